package nbp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"goldgauge/internal/timeseries"
	"goldgauge/pkg/httputil"
)

// DiscoverHousingReportURL scrapes the NBP real-estate page for the
// current residential price workbook link. The static URL has moved
// between site redesigns, so the page is the authority and the configured
// file URL is the fallback.
func (c *Client) DiscoverHousingReportURL(ctx context.Context) string {
	resp, err := c.httpClient.Get(ctx, c.cfg.HousingPageURL, nil)
	if err != nil {
		c.logger.WithError(err).Warn("Housing page fetch failed, using static file URL")
		return c.cfg.HousingFileURL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status_code", resp.StatusCode).Warn("Housing page fetch failed, using static file URL")
		return c.cfg.HousingFileURL
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		c.logger.WithError(err).Warn("Housing page parse failed, using static file URL")
		return c.cfg.HousingFileURL
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		lower := strings.ToLower(href)
		if strings.HasSuffix(lower, ".xlsx") && strings.Contains(lower, "ceny_mieszkan") {
			found = href
			return false
		}
		return true
	})

	if found == "" {
		return c.cfg.HousingFileURL
	}

	base, err := url.Parse(c.cfg.HousingPageURL)
	if err != nil {
		return c.cfg.HousingFileURL
	}
	ref, err := url.Parse(found)
	if err != nil {
		return c.cfg.HousingFileURL
	}

	resolved := base.ResolveReference(ref).String()
	c.logger.WithField("url", resolved).Debug("Discovered housing report URL")
	return resolved
}

// FetchHousingWorkbook downloads the quarterly housing price workbook.
func (c *Client) FetchHousingWorkbook(ctx context.Context, reportURL string) ([]byte, error) {
	resp, err := c.httpClient.Get(ctx, reportURL, map[string]string{
		"Accept": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	})
	if err != nil {
		return nil, &httputil.FetchError{URL: reportURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &httputil.FetchError{URL: reportURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &httputil.FetchError{URL: reportURL, Err: fmt.Errorf("read workbook: %w", err)}
	}

	c.logger.WithField("bytes", len(data)).Debug("Downloaded housing workbook")
	return data, nil
}

// ParseWarsawQuarterly extracts Warsaw m2 prices from the workbook. Each
// quarter becomes one monthly record anchored to the quarter's first month,
// ready for densification. Rows with unrecognized periods or non-numeric
// prices are skipped with a warning.
func (c *Client) ParseWarsawQuarterly(workbook []byte) ([]timeseries.Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	if err != nil {
		return nil, fmt.Errorf("open housing workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("housing workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read housing sheet: %w", err)
	}

	headerRow, warsawCol := findWarsawColumn(rows)
	if warsawCol < 0 {
		return nil, fmt.Errorf("warsaw column not found in housing workbook")
	}

	var records []timeseries.Record
	for _, row := range rows[headerRow+1:] {
		if len(row) <= warsawCol || row[0] == "" || row[warsawCol] == "" {
			continue
		}

		year, quarter, ok := parsePeriod(row[0])
		if !ok {
			c.logger.WithField("period", row[0]).Warn("Skipping unrecognized period")
			continue
		}

		price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[warsawCol]), ",", "."), 64)
		if err != nil || price <= 0 {
			c.logger.WithField("period", row[0]).Warn("Skipping invalid price")
			continue
		}

		records = append(records, timeseries.Record{
			Key:   timeseries.MonthKey(year, (quarter-1)*3+1),
			Value: price,
		})
	}

	timeseries.SortRecords(records)
	c.logger.WithField("count", len(records)).Debug("Extracted Warsaw quarterly prices")
	return records, nil
}

// findWarsawColumn scans the top rows for a header cell naming Warsaw.
func findWarsawColumn(rows [][]string) (headerRow, warsawCol int) {
	limit := len(rows)
	if limit > 20 {
		limit = 20
	}
	for r := 0; r < limit; r++ {
		for col, cell := range rows[r] {
			if strings.Contains(strings.ToLower(cell), "warsza") {
				return r, col
			}
		}
	}
	return -1, -1
}

var (
	yearRe     = regexp.MustCompile(`\b(20\d{2})\b`)
	romanRe    = regexp.MustCompile(`(?i)\b(iv|iii|ii|i)\b`)
	qRe        = regexp.MustCompile(`(?i)q([1-4])`)
	arabicKwRe = regexp.MustCompile(`(?i)([1-4])\s*kw`)
)

var romanQuarters = map[string]int{"i": 1, "ii": 2, "iii": 3, "iv": 4}

// parsePeriod extracts (year, quarter) from the period cell. The workbook
// has used several formats over the years: "III 2006", "I kw. 2023",
// "1 kw. 2023", "Q1 2023".
func parsePeriod(period string) (year, quarter int, ok bool) {
	if m := yearRe.FindStringSubmatch(period); m != nil {
		year, _ = strconv.Atoi(m[1])
	}
	if year == 0 {
		return 0, 0, false
	}

	if m := qRe.FindStringSubmatch(period); m != nil {
		quarter, _ = strconv.Atoi(m[1])
	}
	if quarter == 0 {
		if m := arabicKwRe.FindStringSubmatch(period); m != nil {
			quarter, _ = strconv.Atoi(m[1])
		}
	}
	if quarter == 0 {
		if m := romanRe.FindStringSubmatch(period); m != nil {
			quarter = romanQuarters[strings.ToLower(m[1])]
		}
	}
	if quarter == 0 {
		return 0, 0, false
	}

	return year, quarter, true
}

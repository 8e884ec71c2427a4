// Package contact scrapes contact details from vendor websites. Extraction
// is best-effort: every failure degrades to empty contact info.
package contact

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/vendorscout/backend/internal/domain"
)

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRegex = regexp.MustCompile(`\+?[\d][\d\s().\-]{7,18}[\d]`)
)

// Extractor fetches vendor pages and pulls out emails and phone numbers
type Extractor struct {
	httpClient *http.Client
}

// NewExtractor creates an extractor with a bounded per-request timeout
func NewExtractor(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Extractor{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Extract fetches the website (and its /contact page when the landing page
// yields nothing) and collects deduplicated emails and phones
func (e *Extractor) Extract(ctx context.Context, websiteURL string) (*domain.ContactInfo, error) {
	base := normalizeURL(websiteURL)

	info, err := e.extractPage(ctx, base)
	if err != nil {
		return nil, err
	}

	if len(info.Emails) == 0 && len(info.Phones) == 0 {
		if contactInfo, err := e.extractPage(ctx, base+"/contact"); err == nil {
			info = contactInfo
		}
	}

	log.Printf("[Contact] %s: %d emails, %d phones", base, len(info.Emails), len(info.Phones))
	return info, nil
}

// extractPage fetches one page and scrapes mailto/tel links plus text
func (e *Extractor) extractPage(ctx context.Context, pageURL string) (*domain.ContactInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "VendorScout/1.0")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	info := &domain.ContactInfo{Emails: []string{}, Phones: []string{}}
	seenEmails := make(map[string]bool)
	seenPhones := make(map[string]bool)

	doc.Find("a[href^='mailto:']").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		email := strings.ToLower(strings.TrimPrefix(href, "mailto:"))
		if idx := strings.Index(email, "?"); idx >= 0 {
			email = email[:idx]
		}
		if emailRegex.MatchString(email) && !seenEmails[email] {
			seenEmails[email] = true
			info.Emails = append(info.Emails, email)
		}
	})

	doc.Find("a[href^='tel:']").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		phone := strings.TrimPrefix(href, "tel:")
		if !seenPhones[phone] {
			seenPhones[phone] = true
			info.Phones = append(info.Phones, phone)
		}
	})

	text := doc.Find("body").Text()
	for _, email := range emailRegex.FindAllString(text, 5) {
		email = strings.ToLower(email)
		if !seenEmails[email] {
			seenEmails[email] = true
			info.Emails = append(info.Emails, email)
		}
	}
	for _, phone := range phoneRegex.FindAllString(text, 5) {
		phone = strings.TrimSpace(phone)
		if !seenPhones[phone] {
			seenPhones[phone] = true
			info.Phones = append(info.Phones, phone)
		}
	}

	return info, nil
}

// normalizeURL ensures a scheme and strips a trailing slash
func normalizeURL(websiteURL string) string {
	url := strings.TrimSpace(websiteURL)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return strings.TrimSuffix(url, "/")
}

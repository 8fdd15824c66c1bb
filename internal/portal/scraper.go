package portal

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

// RawScheme is one listing as lifted off a portal page, before normalization.
type RawScheme struct {
	Name      string
	Provider  string
	Amount    string
	Deadline  string
	SourceURL string
}

// Scraper drives portal fetching and normalization.
type Scraper struct {
	fetcher *Fetcher
	now     func() time.Time
}

// NewScraper creates a Scraper using the given fetch configuration.
func NewScraper(cfg FetchConfig) *Scraper {
	return &Scraper{fetcher: NewFetcher(cfg), now: time.Now}
}

var (
	tagRe = regexp.MustCompile(`<[^>]+>`)
	// Scheme names on government pages follow a small set of prefixes.
	schemeLineRe = regexp.MustCompile(`(?i)(?:Post[- ]Matric|Pre[- ]Matric|Merit|Central Sector|National Means|Scholarship for)[^\n<]{3,120}`)
	amountRe     = regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d+)?)`)
	dateRe       = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)
)

// ScrapePortal fetches one portal and returns the normalized scholarships
// found on it. An unreachable or unparseable portal is an error; an empty
// listing is not.
func (s *Scraper) ScrapePortal(ctx context.Context, p Portal) ([]model.Scholarship, error) {
	body, err := s.fetcher.Fetch(ctx, p.URL)
	if err != nil {
		return nil, err
	}

	raws := extractSchemes(body, p.URL)
	out := make([]model.Scholarship, 0, len(raws))
	for _, raw := range raws {
		out = append(out, s.Normalize(raw, p))
	}
	zap.L().Info("portal: scraped",
		zap.String("portal", portalLabel(p)),
		zap.Int("scholarships", len(out)),
	)
	return out, nil
}

// ScrapeAll fetches every portal with bounded concurrency. Individual portal
// failures are logged and skipped rather than failing the sweep.
func (s *Scraper) ScrapeAll(ctx context.Context, portals []Portal) []model.Scholarship {
	results := make([][]model.Scholarship, len(portals))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range portals {
		g.Go(func() error {
			found, err := s.ScrapePortal(ctx, p)
			if err != nil {
				zap.L().Warn("portal: skipping after error",
					zap.String("portal", portalLabel(p)),
					zap.Error(err),
				)
				return nil
			}
			results[i] = found
			return nil
		})
	}
	_ = g.Wait()

	var all []model.Scholarship
	for _, batch := range results {
		all = append(all, batch...)
	}
	return all
}

// extractSchemes strips the page to text and lifts scheme-name lines. Portals
// render listings through scripts more often than not, so this leans on the
// text patterns scheme names follow rather than on markup structure.
func extractSchemes(body []byte, sourceURL string) []RawScheme {
	text := stripHTML(string(body))

	seen := make(map[string]bool)
	var out []RawScheme
	for _, m := range schemeLineRe.FindAllString(text, -1) {
		name := strings.TrimSpace(m)
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, RawScheme{Name: name, SourceURL: sourceURL})
	}
	return out
}

// stripHTML removes script and style blocks, strips tags, and decodes the
// common entities. Good enough for text extraction from listing pages.
func stripHTML(html string) string {
	for _, tag := range []string{"script", "style", "nav", "footer"} {
		re := regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
		html = re.ReplaceAllString(html, "")
	}
	html = tagRe.ReplaceAllString(html, "\n")
	r := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	return strings.TrimSpace(r.Replace(html))
}

// Normalize converts a raw listing into a canonical Scholarship, filling
// unscrapeable fields with open defaults so matching stays lenient.
func (s *Scraper) Normalize(raw RawScheme, p Portal) model.Scholarship {
	minAmount, maxAmount := parseAmountRange(raw.Amount)

	deadline := parseDeadline(raw.Deadline)
	if deadline.IsZero() {
		// Listings rarely print a machine-readable date. Assume half a year.
		deadline = s.now().AddDate(0, 0, 180)
	}

	provider := raw.Provider
	states := []string{"all"}
	rawType := p.DefaultType
	if p.State != "" {
		if provider == "" {
			provider = p.State + " Government"
		}
		states = []string{p.State}
		rawType = "government"
	}
	if provider == "" {
		provider = "Government of India"
	}
	if rawType == "" {
		rawType = inferType(raw.Name + " " + provider)
	}

	typ, ok := model.NormalizeType(rawType, states)
	if !ok {
		typ = model.TypePrivate
	}

	return model.Scholarship{
		ID:       schemeID(raw.Name),
		Name:     raw.Name,
		Provider: provider,
		Type:     typ,
		Amount:   model.AmountRange{Min: minAmount, Max: maxAmount},
		Deadline: deadline,
		Eligibility: model.Eligibility{
			Categories:  []string{"all"},
			IncomeLimit: 800000,
			States:      states,
			Levels:      []string{"ug", "pg"},
		},
		CompetitionLevel: model.CompetitionMedium,
		Stackable:        true,
	}
}

// parseAmountRange pulls numbers out of free text like "Rs. 10,000 - 50,000
// per annum". One number means min, with max assumed at twice min.
func parseAmountRange(text string) (int64, int64) {
	const defaultMin, defaultMax = 10000, 100000
	nums := amountRe.FindAllString(text, 2)
	if len(nums) == 0 {
		return defaultMin, defaultMax
	}
	minAmount, err := strconv.ParseInt(strings.ReplaceAll(nums[0], ",", ""), 10, 64)
	if err != nil {
		return defaultMin, defaultMax
	}
	if len(nums) > 1 {
		if maxAmount, err := strconv.ParseInt(strings.ReplaceAll(nums[1], ",", ""), 10, 64); err == nil {
			if maxAmount < minAmount {
				minAmount, maxAmount = maxAmount, minAmount
			}
			return minAmount, maxAmount
		}
	}
	return minAmount, minAmount * 2
}

// parseDeadline handles the dd/mm/yyyy and dd-mm-yy shapes portals print.
func parseDeadline(text string) time.Time {
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// inferType guesses a scholarship type from name and provider keywords.
func inferType(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "ministry"), strings.Contains(t, "government"),
		strings.Contains(t, "central sector"), strings.Contains(t, "national"):
		return "government"
	case strings.Contains(t, "foundation"), strings.Contains(t, "trust"),
		strings.Contains(t, "bank"), strings.Contains(t, "csr"):
		return "corporate"
	case strings.Contains(t, "university"), strings.Contains(t, "college"),
		strings.Contains(t, "institute"):
		return "college"
	}
	return "private"
}

var idCleanRe = regexp.MustCompile(`[^a-z0-9]+`)

// schemeID derives a stable slug ID from a scheme name.
func schemeID(name string) string {
	slug := idCleanRe.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 50 {
		slug = slug[:50]
	}
	return fmt.Sprintf("scraped-%s", slug)
}

func portalLabel(p Portal) string {
	if p.Name != "" {
		return p.Name
	}
	return p.State
}

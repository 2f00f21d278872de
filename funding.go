package harvest

import (
	"regexp"
	"strconv"
	"strings"
)

// Funding extraction mirrors the newsletter conventions of the VC feeds:
// dollar amounts with magnitude suffixes and stage words embedded in prose.
var (
	currencyRe = regexp.MustCompile(`(?i)\$(\d+(?:\.\d+)?)\s*(million|billion|m|b|k)?`)
	stageRe    = regexp.MustCompile(`(?i)series\s+([a-z])\b|seed|pre-seed|angel|ipo`)
)

// ExtractCurrencyAmount extracts the first dollar amount from text,
// expanded to a whole-dollar figure. Returns 0 and false when no amount
// is present.
func ExtractCurrencyAmount(text string) (float64, bool) {
	m := currencyRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	switch strings.ToLower(m[2]) {
	case "billion", "b":
		amount *= 1e9
	case "million", "m":
		amount *= 1e6
	case "k":
		amount *= 1e3
	}
	return amount, true
}

// ExtractFundingStage extracts a funding stage mention ("series a", "seed",
// "pre-seed", "angel", "ipo") from text, lowercased. Returns "" when none
// is present.
func ExtractFundingStage(text string) string {
	return strings.ToLower(stageRe.FindString(text))
}

// FundingEntry is one company/amount/investor record pulled out of a
// funding roundup section.
type FundingEntry struct {
	Company   string   `json:"company"`
	AmountUSD float64  `json:"amountUsd"`
	Investors []string `json:"investors"`
	RawText   string   `json:"rawText"`
}

var (
	fundingSectionRe = map[string]*regexp.Regexp{
		"massiveFundings": regexp.MustCompile(`(?is)## Massive Fundings(.*?)(?:##|$)`),
		"bigFundings":     regexp.MustCompile(`(?is)## Big-But-Not-Crazy-Big Fundings(.*?)(?:##|$)`),
		"smallerFundings": regexp.MustCompile(`(?is)## Smaller Fundings(.*?)(?:##|$)`),
	}
	boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)
	// Greedy so a comma-joined investor list ("**a**, **b**") is captured
	// whole and split afterwards.
	investorsRe = regexp.MustCompile(`from\s+\*\*(.*)\*\*`)
)

// ExtractFundingData scans newsletter-style content for funding roundup
// sections and parses each into structured entries. Returns nil when the
// content carries no funding sections, so callers can skip the metadata
// key entirely.
func ExtractFundingData(content string) map[string][]FundingEntry {
	if content == "" {
		return nil
	}

	data := make(map[string][]FundingEntry)
	found := false
	for key, re := range fundingSectionRe {
		m := re.FindStringSubmatch(content)
		if m == nil {
			data[key] = []FundingEntry{}
			continue
		}
		entries := parseFundingSection(m[1])
		data[key] = entries
		if len(entries) > 0 {
			found = true
		}
	}

	if !found {
		return nil
	}
	return data
}

// parseFundingSection splits a section into blank-line-separated entries
// and keeps those naming a company or an amount.
func parseFundingSection(section string) []FundingEntry {
	entries := []FundingEntry{}
	for _, block := range strings.Split(section, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		entry := FundingEntry{RawText: block, Investors: []string{}}
		if m := boldRe.FindStringSubmatch(block); m != nil {
			entry.Company = m[1]
		}
		if amount, ok := ExtractCurrencyAmount(block); ok {
			entry.AmountUSD = amount
		}
		if m := investorsRe.FindStringSubmatch(block); m != nil {
			for _, inv := range strings.Split(m[1], "**, **") {
				if inv = strings.TrimSpace(inv); inv != "" {
					entry.Investors = append(entry.Investors, inv)
				}
			}
		}

		if entry.Company != "" || entry.AmountUSD > 0 {
			entries = append(entries, entry)
		}
	}
	return entries
}

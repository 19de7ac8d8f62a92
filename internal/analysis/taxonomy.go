package analysis

import (
	"sort"
	"strings"
)

// CommitteeSectorMap resolves committee identifiers to the market sectors
// and industries they have jurisdiction over. Unknown committee IDs resolve
// to empty sets, never an error.
type CommitteeSectorMap interface {
	Sectors(committeeID string) []string
	Industries(committeeID string) []string
	// HasOverlap reports whether sector is in the committee's sector set OR
	// industry is in its industry set. Either match type is sufficient.
	HasOverlap(committeeID, sector, industry string) bool
}

// MatchSource tags how a committee's jurisdiction was resolved. Curated and
// keyword-inferred results have different confidence and must never be
// blended without provenance.
type MatchSource int

const (
	MatchNone MatchSource = iota
	MatchCurated
	MatchKeyword
)

// String returns the provenance label.
func (m MatchSource) String() string {
	switch m {
	case MatchCurated:
		return "curated"
	case MatchKeyword:
		return "keyword"
	default:
		return "none"
	}
}

// Resolution is the jurisdiction resolved for one committee, tagged with its
// provenance.
type Resolution struct {
	Source     MatchSource
	Sectors    []string
	Industries []string
}

type jurisdiction struct {
	sectors    []string
	industries []string
}

// Taxonomy is the hand-curated committee-to-sector jurisdiction table, keyed
// by Thomas committee IDs (two-letter chamber prefix + code, e.g. "SSAF",
// "HSBA"). Entries with empty sets are deliberate: procedural or overly
// broad committees (Appropriations, Rules, Budget) map to nothing.
//
// An optional keyword fallback infers sectors from committee display names
// for committees missing from the table; fallback results are tagged
// MatchKeyword and only used when the fallback is explicitly enabled.
type Taxonomy struct {
	entries  map[string]jurisdiction
	names    map[string]string // committee ID -> display name, for the keyword fallback
	fallback bool
}

// TaxonomyOption configures a Taxonomy.
type TaxonomyOption func(*Taxonomy)

// WithKeywordFallback enables keyword-based sector inference for committees
// absent from the curated table. Display names must be registered via
// RegisterName for the fallback to have anything to match against.
func WithKeywordFallback() TaxonomyOption {
	return func(t *Taxonomy) { t.fallback = true }
}

// NewTaxonomy builds the curated jurisdiction table.
func NewTaxonomy(opts ...TaxonomyOption) *Taxonomy {
	t := &Taxonomy{
		entries: curatedJurisdictions(),
		names:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RegisterName records a committee's display name so the keyword fallback
// can inspect it.
func (t *Taxonomy) RegisterName(committeeID, name string) {
	t.names[normalizeCommitteeID(committeeID)] = name
}

// Sectors returns the sectors a committee has jurisdiction over.
func (t *Taxonomy) Sectors(committeeID string) []string {
	r := t.Resolve(committeeID)
	return r.Sectors
}

// Industries returns the industries a committee has jurisdiction over.
func (t *Taxonomy) Industries(committeeID string) []string {
	r := t.Resolve(committeeID)
	return r.Industries
}

// HasOverlap reports whether the given sector or industry falls under the
// committee's jurisdiction. Matches are exact, case-sensitive label equality.
func (t *Taxonomy) HasOverlap(committeeID, sector, industry string) bool {
	r := t.Resolve(committeeID)
	if sector != "" {
		for _, s := range r.Sectors {
			if s == sector {
				return true
			}
		}
	}
	if industry != "" {
		for _, i := range r.Industries {
			if i == industry {
				return true
			}
		}
	}
	return false
}

// Resolve returns the committee's jurisdiction with provenance: curated table
// first, keyword inference over the registered display name only when the
// fallback is enabled. Unknown committees resolve to an empty MatchNone.
func (t *Taxonomy) Resolve(committeeID string) Resolution {
	id := normalizeCommitteeID(committeeID)
	if j, ok := t.entries[id]; ok {
		return Resolution{Source: MatchCurated, Sectors: j.sectors, Industries: j.industries}
	}
	if t.fallback {
		if name, ok := t.names[id]; ok {
			if sectors := InferSectors(name); len(sectors) > 0 {
				return Resolution{Source: MatchKeyword, Sectors: sectors}
			}
		}
	}
	return Resolution{Source: MatchNone}
}

func normalizeCommitteeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// keywordSectors maps lowercase name fragments to sectors. Inference is a
// lower-confidence second strategy than the curated table; it never produces
// industries.
var keywordSectors = map[string][]string{
	"bank":              {"Financial Services"},
	"financ":            {"Financial Services"},
	"energy":            {"Energy", "Utilities"},
	"health":            {"Healthcare"},
	"agricultur":        {"Consumer Defensive"},
	"armed":             {"Industrials"},
	"defense":           {"Industrials"},
	"intelligence":      {"Technology", "Industrials"},
	"transport":         {"Industrials"},
	"science":           {"Technology"},
	"technolog":         {"Technology"},
	"commerce":          {"Technology", "Communication Services"},
	"telecom":           {"Communication Services"},
	"environment":       {"Utilities", "Basic Materials"},
	"natural resources": {"Energy", "Basic Materials"},
	"veteran":           {"Healthcare"},
	"housing":           {"Real Estate"},
}

// InferSectors performs keyword matching against a committee display name
// and returns the union of matched sectors, sorted and deduplicated.
func InferSectors(committeeName string) []string {
	name := strings.ToLower(committeeName)
	set := make(map[string]struct{})
	for frag, sectors := range keywordSectors {
		if strings.Contains(name, frag) {
			for _, s := range sectors {
				set[s] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// curatedJurisdictions is the static reference table. Sector and industry
// labels follow the market-data provider's classification scheme so overlap
// checks can use exact equality.
func curatedJurisdictions() map[string]jurisdiction {
	return map[string]jurisdiction{
		// Senate
		"SSAF": { // Agriculture, Nutrition, and Forestry
			sectors:    []string{"Consumer Defensive"},
			industries: []string{"Farm Products", "Agricultural Inputs", "Packaged Foods"},
		},
		"SSAP": {}, // Appropriations: jurisdiction too broad, deliberately empty
		"SSAS": { // Armed Services
			sectors:    []string{"Industrials"},
			industries: []string{"Aerospace & Defense"},
		},
		"SSBK": { // Banking, Housing, and Urban Affairs
			sectors:    []string{"Financial Services", "Real Estate"},
			industries: []string{"Banks - Diversified", "Banks - Regional", "Insurance - Diversified", "REIT - Diversified"},
		},
		"SSCM": { // Commerce, Science, and Transportation
			sectors:    []string{"Technology", "Communication Services", "Industrials"},
			industries: []string{"Telecom Services", "Airlines", "Railroads", "Internet Content & Information"},
		},
		"SSEG": { // Energy and Natural Resources
			sectors:    []string{"Energy", "Utilities", "Basic Materials"},
			industries: []string{"Oil & Gas E&P", "Oil & Gas Integrated", "Utilities - Regulated Electric"},
		},
		"SSEV": { // Environment and Public Works
			sectors:    []string{"Utilities", "Basic Materials"},
			industries: []string{"Waste Management", "Engineering & Construction"},
		},
		"SSFI": { // Finance
			sectors:    []string{"Financial Services", "Healthcare"},
			industries: []string{"Insurance - Diversified", "Asset Management", "Drug Manufacturers - General"},
		},
		"SSFR": {}, // Foreign Relations: no direct market jurisdiction
		"SSGA": { // Homeland Security and Governmental Affairs
			sectors:    []string{"Industrials"},
			industries: []string{"Security & Protection Services"},
		},
		"SSHR": { // Health, Education, Labor, and Pensions
			sectors:    []string{"Healthcare"},
			industries: []string{"Biotechnology", "Drug Manufacturers - General", "Medical Devices", "Education & Training Services"},
		},
		"SSJU": { // Judiciary (antitrust, IP, tech platforms)
			sectors:    []string{"Technology", "Communication Services"},
			industries: []string{"Internet Content & Information", "Software - Application"},
		},
		"SSRA": {}, // Rules and Administration: procedural, deliberately empty
		"SSVA": { // Veterans' Affairs
			sectors:    []string{"Healthcare"},
			industries: []string{"Medical Care Facilities", "Drug Manufacturers - General"},
		},
		"SLIN": { // Select Intelligence
			sectors:    []string{"Technology", "Industrials"},
			industries: []string{"Aerospace & Defense", "Software - Infrastructure", "Information Technology Services"},
		},

		// House
		"HSAG": { // Agriculture
			sectors:    []string{"Consumer Defensive"},
			industries: []string{"Farm Products", "Agricultural Inputs", "Packaged Foods"},
		},
		"HSAP": {}, // Appropriations: jurisdiction too broad, deliberately empty
		"HSAS": { // Armed Services
			sectors:    []string{"Industrials"},
			industries: []string{"Aerospace & Defense"},
		},
		"HSBA": { // Financial Services
			sectors:    []string{"Financial Services"},
			industries: []string{"Banks - Diversified", "Banks - Regional", "Capital Markets", "Credit Services", "Insurance - Diversified"},
		},
		"HSBU": {}, // Budget: procedural, deliberately empty
		"HSED": { // Education and the Workforce
			sectors:    []string{"Consumer Defensive"},
			industries: []string{"Education & Training Services"},
		},
		"HSFA": {}, // Foreign Affairs: no direct market jurisdiction
		"HSHA": {}, // House Administration: procedural, deliberately empty
		"HSHM": { // Homeland Security
			sectors:    []string{"Industrials", "Technology"},
			industries: []string{"Security & Protection Services", "Aerospace & Defense"},
		},
		"HSIF": { // Energy and Commerce
			sectors:    []string{"Energy", "Healthcare", "Technology", "Communication Services", "Utilities"},
			industries: []string{"Telecom Services", "Drug Manufacturers - General", "Oil & Gas Midstream", "Utilities - Regulated Electric"},
		},
		"HSII": { // Natural Resources
			sectors:    []string{"Energy", "Basic Materials"},
			industries: []string{"Oil & Gas E&P", "Gold", "Other Industrial Metals & Mining"},
		},
		"HSJU": { // Judiciary
			sectors:    []string{"Technology", "Communication Services"},
			industries: []string{"Internet Content & Information", "Software - Application"},
		},
		"HSPW": { // Transportation and Infrastructure
			sectors:    []string{"Industrials"},
			industries: []string{"Airlines", "Railroads", "Engineering & Construction", "Trucking"},
		},
		"HSRU": {}, // Rules: procedural, deliberately empty
		"HSSM": {}, // Small Business: no listed-company jurisdiction
		"HSSY": { // Science, Space, and Technology
			sectors:    []string{"Technology"},
			industries: []string{"Semiconductors", "Software - Infrastructure", "Communication Equipment", "Aerospace & Defense"},
		},
		"HSVR": { // Veterans' Affairs
			sectors:    []string{"Healthcare"},
			industries: []string{"Medical Care Facilities", "Drug Manufacturers - General"},
		},
		"HSWM": { // Ways and Means
			sectors:    []string{"Financial Services", "Healthcare"},
			industries: []string{"Insurance - Diversified", "Asset Management"},
		},
		"HLIG": { // Permanent Select Intelligence
			sectors:    []string{"Technology", "Industrials"},
			industries: []string{"Aerospace & Defense", "Software - Infrastructure", "Information Technology Services"},
		},
	}
}

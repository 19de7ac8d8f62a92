package ingestion

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hmartins/capitolpulse/internal/analysis"
	"github.com/hmartins/capitolpulse/internal/domain/models"
)

// legislatorRecord mirrors one entry of the public legislators-current.yaml
// dataset.
type legislatorRecord struct {
	ID struct {
		Bioguide string `yaml:"bioguide"`
	} `yaml:"id"`
	Name struct {
		First string `yaml:"first"`
		Last  string `yaml:"last"`
	} `yaml:"name"`
	Terms []struct {
		Type  string `yaml:"type"` // sen|rep
		Party string `yaml:"party"`
	} `yaml:"terms"`
}

// committeeMember mirrors one membership entry of
// committee-membership-current.yaml, which is keyed by Thomas committee ID.
type committeeMember struct {
	Name     string `yaml:"name"`
	Bioguide string `yaml:"bioguide"`
}

// committeeRecord mirrors one entry of committees-current.yaml; only the ID
// and display name are used.
type committeeRecord struct {
	ThomasID string `yaml:"thomas_id"`
	Name     string `yaml:"name"`
}

// LoadTraders joins the legislators and committee-membership datasets into
// Trader records keyed by the name-based trader identity, so disclosed
// trades can be matched to their filer's committees.
func LoadTraders(legislatorsPath, membershipPath string) (map[string]models.Trader, error) {
	data, err := os.ReadFile(legislatorsPath)
	if err != nil {
		return nil, fmt.Errorf("read legislators: %w", err)
	}
	var legislators []legislatorRecord
	if err := yaml.Unmarshal(data, &legislators); err != nil {
		return nil, fmt.Errorf("parse legislators: %w", err)
	}

	committees, err := loadMembership(membershipPath)
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.Trader, len(legislators))
	for _, rec := range legislators {
		if len(rec.Terms) == 0 {
			continue
		}
		// The last term is the current one.
		term := rec.Terms[len(rec.Terms)-1]
		chamber := "house"
		if term.Type == "sen" {
			chamber = "senate"
		}

		id := analysis.NameBasedID(chamber, rec.Name.First, rec.Name.Last)
		out[id] = models.Trader{
			ID:         id,
			FirstName:  rec.Name.First,
			LastName:   rec.Name.Last,
			Chamber:    chamber,
			Party:      term.Party,
			Committees: committees[rec.ID.Bioguide],
		}
	}
	return out, nil
}

// loadMembership inverts the committee-membership dataset into a
// bioguide -> committee ID list.
func loadMembership(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read committee membership: %w", err)
	}
	var membership map[string][]committeeMember
	if err := yaml.Unmarshal(data, &membership); err != nil {
		return nil, fmt.Errorf("parse committee membership: %w", err)
	}

	byMember := make(map[string][]string)
	for committeeID, members := range membership {
		// Subcommittee IDs carry a numeric suffix (e.g. SSAF13); fold them
		// into their parent committee.
		parent := strings.TrimRight(committeeID, "0123456789")
		for _, m := range members {
			if m.Bioguide == "" {
				continue
			}
			if !containsString(byMember[m.Bioguide], parent) {
				byMember[m.Bioguide] = append(byMember[m.Bioguide], parent)
			}
		}
	}
	return byMember, nil
}

// LoadCommitteeNames reads committees-current.yaml into an ID -> display
// name map, used to feed the taxonomy's keyword fallback.
func LoadCommitteeNames(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read committees: %w", err)
	}
	var records []committeeRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse committees: %w", err)
	}

	out := make(map[string]string, len(records))
	for _, rec := range records {
		if rec.ThomasID != "" {
			out[rec.ThomasID] = rec.Name
		}
	}
	return out, nil
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

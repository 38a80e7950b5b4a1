// Package entities resolves domain entity references (projects, contacts,
// wallets, categories) out of free-text questions, scoped to one tenant,
// with multi-strategy matching and confidence scoring.
package entities

// Type identifies the kind of domain object an Entity refers to.
type Type string

const (
	TypeProject       Type = "project"
	TypeContact       Type = "contact"
	TypeSubcontractor Type = "subcontractor"
	TypeMember        Type = "member"
	TypeWallet        Type = "wallet"
	TypeCategory      Type = "category"
)

// MatchType indicates how a candidate entity was matched to a question term.
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchPartial MatchType = "partial"
	MatchFuzzy   MatchType = "fuzzy"
	MatchAlias   MatchType = "alias"
)

// Entity is a resolved domain object reference. Created transiently per
// request; never persisted.
type Entity struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Type           Type              `json:"type"`
	OrganizationID string            `json:"organizationId"`
	Confidence     float64           `json:"confidence"`
	MatchedAlias   string            `json:"matchedAlias,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// SearchResult is the intermediate record produced per candidate before
// deduplication into the final entity list.
type SearchResult struct {
	Entity      Entity
	Score       float64
	MatchType   MatchType
	MatchedTerm string
}

// Options configures a resolution run.
type Options struct {
	// Types restricts which collections are searched. Empty means all four
	// searchable types (project, contact, wallet, category).
	Types []Type

	// MinConfidence drops candidates scoring below it. Zero means 0.5.
	MinConfidence float64

	// MaxResults truncates the final list. Zero means 5.
	MaxResults int
}

func (o Options) withDefaults() Options {
	if len(o.Types) == 0 {
		o.Types = []Type{TypeProject, TypeContact, TypeWallet, TypeCategory}
	}
	if o.MinConfidence == 0 {
		o.MinConfidence = 0.5
	}
	if o.MaxResults == 0 {
		o.MaxResults = 5
	}
	return o
}

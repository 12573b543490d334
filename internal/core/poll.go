package core

import (
	"time"
)

type Poll struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	Type                  PollType       `json:"type"`
	PollMethod            PollMethod     `json:"pollmethod"`
	OnehundredPercentBase PercentBase    `json:"onehundred_percent_base"`
	MajorityMethod        MajorityMethod `json:"majority_method"`
	State                 PollState      `json:"state"`
	Groups                []int          `json:"groups"`

	// Always derived from Type, never set by clients.
	IsPseudoanonymized bool `json:"is_pseudoanonymized"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PollChanges is a partial update. A nil field is absent from the change set
// and leaves the stored value untouched.
type PollChanges struct {
	Title                 *string         `json:"title,omitempty"`
	Type                  *PollType       `json:"type,omitempty"`
	PollMethod            *PollMethod     `json:"pollmethod,omitempty"`
	OnehundredPercentBase *PercentBase    `json:"onehundred_percent_base,omitempty"`
	MajorityMethod        *MajorityMethod `json:"majority_method,omitempty"`
	Groups                *[]int          `json:"groups,omitempty"`

	IsPseudoanonymized *bool `json:"-"`
}

// Apply returns a copy of the poll with all present changes applied.
func (p Poll) Apply(changes PollChanges) Poll {
	if changes.Title != nil {
		p.Title = *changes.Title
	}

	if changes.Type != nil {
		p.Type = *changes.Type
	}

	if changes.PollMethod != nil {
		p.PollMethod = *changes.PollMethod
	}

	if changes.OnehundredPercentBase != nil {
		p.OnehundredPercentBase = *changes.OnehundredPercentBase
	}

	if changes.MajorityMethod != nil {
		p.MajorityMethod = *changes.MajorityMethod
	}

	if changes.Groups != nil {
		p.Groups = append([]int(nil), *changes.Groups...)
	}

	if changes.IsPseudoanonymized != nil {
		p.IsPseudoanonymized = *changes.IsPseudoanonymized
	}

	return p
}

type PollEvent struct {
	Kind PollEventKind `json:"kind"`
	Poll Poll          `json:"poll"`
}

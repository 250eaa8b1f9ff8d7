package models

// InteractionRecord is one answered question. DocumentRef and VersionRef are
// a snapshot of the owner's documents when the question was asked and are
// never re-checked against later uploads.
type InteractionRecord struct {
	Owner       string    `json:"user_id"`
	Timestamp   Timestamp `json:"timestamp"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	DocumentRef string    `json:"document"`
	VersionRef  int       `json:"version"`
	Language    Language  `json:"language"`
}

// Interactions is the append-only log, in insertion order.
type Interactions []InteractionRecord

// Normalize replaces a decoded null with an empty log.
func (i *Interactions) Normalize() error {
	if *i == nil {
		*i = Interactions{}
	}
	return nil
}

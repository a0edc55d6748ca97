package document

// Document is a schema-less record of the skills and projects collections.
type Document map[string]any

// InsertResult mirrors the acknowledgement a document store returns from a single insert.
type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}


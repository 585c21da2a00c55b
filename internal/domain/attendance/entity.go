package attendance

// DayRecord is the stored, possibly partial, shape of one day inside a
// monthly bucket. Nil fields were never written.
type DayRecord struct {
	Start  *string `json:"start,omitempty"`
	End    *string `json:"end,omitempty"`
	Task   *string `json:"task,omitempty"`
	Status *string `json:"status,omitempty"`
}

// IsEmpty reports whether r carries no fields at all.
func (r DayRecord) IsEmpty() bool {
	return r.Start == nil && r.End == nil && r.Task == nil && r.Status == nil
}

// Merge returns r with every non-nil field of patch applied over it.
func (r DayRecord) Merge(patch DayRecord) DayRecord {
	if patch.Start != nil {
		r.Start = patch.Start
	}
	if patch.End != nil {
		r.End = patch.End
	}
	if patch.Task != nil {
		r.Task = patch.Task
	}
	if patch.Status != nil {
		r.Status = patch.Status
	}
	return r
}

// Bucket is the document holding every day of one user's month, keyed by
// day key. It doubles as the patch shape for merge writes.
type Bucket map[string]DayRecord

// Merge applies patch to b in place, day by day and field by field.
func (b Bucket) Merge(patch Bucket) {
	for dayKey, day := range patch {
		b[dayKey] = b[dayKey].Merge(day)
	}
}

// Clone returns a deep copy of b.
func (b Bucket) Clone() Bucket {
	out := make(Bucket, len(b))
	for dayKey, day := range b {
		out[dayKey] = DayRecord{
			Start:  clonePtr(day.Start),
			End:    clonePtr(day.End),
			Task:   clonePtr(day.Task),
			Status: clonePtr(day.Status),
		}
	}
	return out
}

// BucketRef addresses one stored bucket.
type BucketRef struct {
	UserID    string
	YearMonth string
}

// Day is one day of a month with defaults filled in.
type Day struct {
	Start  *string
	End    *string
	Task   string
	Status Status
}

// IsDefault reports whether d is indistinguishable from a day never written.
func (d Day) IsDefault() bool {
	return d.Start == nil && d.End == nil && d.Task == "" && d.Status == StatusPending
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func ptr(s string) *string {
	return &s
}

package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayRecord_Merge(t *testing.T) {
	existing := DayRecord{Start: ptr("2024-07-15T09:00:00+09:00"), Task: ptr("A")}

	got := existing.Merge(DayRecord{End: ptr("2024-07-15T18:00:00+09:00")})

	assert.Equal(t, "2024-07-15T09:00:00+09:00", *got.Start)
	assert.Equal(t, "2024-07-15T18:00:00+09:00", *got.End)
	assert.Equal(t, "A", *got.Task)
	assert.Nil(t, got.Status)
}

func TestDayRecord_IsEmpty(t *testing.T) {
	assert.True(t, DayRecord{}.IsEmpty())
	assert.False(t, DayRecord{Task: ptr("")}.IsEmpty())
}

func TestBucket_MergeLeavesSiblingDaysAlone(t *testing.T) {
	b := Bucket{
		"2024-07-01": {Start: ptr("s1"), Task: ptr("t1")},
		"2024-07-02": {Start: ptr("s2")},
	}

	b.Merge(Bucket{
		"2024-07-02": {End: ptr("e2")},
		"2024-07-03": {Status: ptr(LabelApproved)},
	})

	assert.Equal(t, DayRecord{Start: ptr("s1"), Task: ptr("t1")}, b["2024-07-01"])
	assert.Equal(t, DayRecord{Start: ptr("s2"), End: ptr("e2")}, b["2024-07-02"])
	assert.Equal(t, DayRecord{Status: ptr(LabelApproved)}, b["2024-07-03"])
}

func TestBucket_CloneIsDeep(t *testing.T) {
	b := Bucket{"2024-07-01": {Task: ptr("original")}}
	c := b.Clone()

	*c["2024-07-01"].Task = "changed"

	assert.Equal(t, "original", *b["2024-07-01"].Task)
}

func TestDay_IsDefault(t *testing.T) {
	assert.True(t, Day{Status: StatusPending}.IsDefault())
	assert.False(t, Day{Status: StatusApproved}.IsDefault())
	assert.False(t, Day{Status: StatusPending, Task: "x"}.IsDefault())
	assert.False(t, Day{Status: StatusPending, Start: ptr("s")}.IsDefault())
}

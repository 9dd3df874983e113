package grid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populated(t *testing.T) *Grid {
	t.Helper()
	g, err := New(4, 5)
	require.NoError(t, err)
	g.SetStart(1, 1)
	g.SetEnd(2, 4)
	g.SetWall(0, 0)
	g.SetWall(3, 3)
	g.SetWeight(2, 2, 5)
	g.SetWeight(0, 4, 10)
	return g
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	g := populated(t)
	// annotations must never leak into the record
	g.At(2, 2).Explored = true
	g.At(2, 2).Dist = 42

	rec := g.Snapshot()

	fresh, err := New(2, 2)
	require.NoError(t, err)
	require.NoError(t, fresh.Load(rec))

	assert.Equal(t, g.Rows(), fresh.Rows())
	assert.Equal(t, g.Cols(), fresh.Cols())
	for i := 0; i < g.Size(); i++ {
		want, got := g.CellAt(i), fresh.CellAt(i)
		assert.Equal(t, want.Role, got.Role, "cell %d role", i)
		assert.Equal(t, want.Wall, got.Wall, "cell %d wall", i)
		assert.Equal(t, want.Weight, got.Weight, "cell %d weight", i)
		assert.False(t, got.Explored)
		assert.Equal(t, Inf, got.Dist)
	}
}

func TestRecordJSONRoundTrip(t *testing.T) {
	t.Parallel()

	g := populated(t)
	raw, err := json.Marshal(g)
	require.NoError(t, err)

	var rec Record
	require.NoError(t, json.Unmarshal(raw, &rec))

	fresh, err := FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, g.Snapshot(), fresh.Snapshot())
}

func TestLoadIsAllOrNothing(t *testing.T) {
	t.Parallel()

	g := populated(t)
	before := g.Snapshot()

	bad := g.Snapshot()
	bad.Cells = bad.Cells[:len(bad.Cells)-1]

	err := g.Load(bad)
	assert.ErrorIs(t, err, ErrBadRecord)
	assert.Equal(t, before, g.Snapshot(), "failed load must not mutate the grid")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() Record {
		g, err := New(3, 3)
		require.NoError(t, err)
		return g.Snapshot()
	}

	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr error
	}{
		{
			name:    "valid",
			mutate:  func(*Record) {},
			wantErr: nil,
		},
		{
			name:    "too small",
			mutate:  func(r *Record) { r.Rows = 1 },
			wantErr: ErrBadRecord,
		},
		{
			name:    "cell count mismatch",
			mutate:  func(r *Record) { r.Cells = r.Cells[1:] },
			wantErr: ErrBadRecord,
		},
		{
			name:    "out of bounds cell",
			mutate:  func(r *Record) { r.Cells[4].Row = 9 },
			wantErr: ErrBadRecord,
		},
		{
			name:    "duplicate cell",
			mutate:  func(r *Record) { r.Cells[4] = r.Cells[5] },
			wantErr: ErrBadRecord,
		},
		{
			name:    "zero weight",
			mutate:  func(r *Record) { r.Cells[4].Weight = 0 },
			wantErr: ErrBadRecord,
		},
		{
			name:    "missing end",
			mutate:  func(r *Record) { r.Cells[8].IsEnd = false },
			wantErr: ErrRecordRoles,
		},
		{
			name:    "two starts",
			mutate:  func(r *Record) { r.Cells[4].IsStart = true },
			wantErr: ErrRecordRoles,
		},
		{
			name:    "cell both start and end",
			mutate: func(r *Record) {
				r.Cells[8].IsEnd = false
				r.Cells[0].IsEnd = true
			},
			wantErr: ErrBadRecord,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := base()
			test.mutate(&rec)
			err := rec.Validate()
			if test.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, test.wantErr)
			}
		})
	}
}

func TestLoadNormalizesWallOnSpecial(t *testing.T) {
	t.Parallel()

	g, err := New(3, 3)
	require.NoError(t, err)
	rec := g.Snapshot()
	// a record claiming the start cell is also a wall favors the role flag
	rec.Cells[0].IsWall = true

	fresh, err := FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, Start, fresh.At(0, 0).Role)
	assert.False(t, fresh.At(0, 0).Wall)
}

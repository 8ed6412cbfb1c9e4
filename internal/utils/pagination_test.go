package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/concert-ticket-reservation/internal/utils"
)

func TestNewPage_RoundsTotalPagesUp(t *testing.T) {
	cases := []struct {
		name       string
		totalCount int64
		pageSize   int
		wantPages  int64
	}{
		{"exact multiple", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"single short page", 3, 10, 1},
		{"empty", 0, 10, 0},
		{"page size one", 5, 1, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := utils.NewPage([]string{}, tc.totalCount, 1, tc.pageSize)
			assert.Equal(t, tc.wantPages, p.Metadata.TotalPages)
			assert.Equal(t, tc.totalCount, p.Metadata.TotalCount)
		})
	}
}

func TestNewPage_ItemCountTracksDataNotPageSize(t *testing.T) {
	p := utils.NewPage([]int{1, 2}, 12, 2, 10)
	assert.Equal(t, 2, p.Metadata.ItemCount)
	assert.Equal(t, 2, p.Metadata.Page)
	assert.Equal(t, 10, p.Metadata.PageSize)
	assert.Equal(t, int64(2), p.Metadata.TotalPages)
}

func TestNormalizePaging_Defaults(t *testing.T) {
	page, size := utils.NormalizePaging(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	page, size = utils.NormalizePaging(-3, -1)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	page, size = utils.NormalizePaging(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, size)
}

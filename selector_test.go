package jdoc2md_test

import (
	"testing"

	"github.com/fwojciec/jdoc2md"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorTable_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts the default table", func(t *testing.T) {
		t.Parallel()

		table := jdoc2md.DefaultSelectorTable()

		assert.NoError(t, table.Validate())
	})

	t.Run("rejects an unknown version", func(t *testing.T) {
		t.Parallel()

		table := jdoc2md.DefaultSelectorTable()
		table.Version = 2

		err := table.Validate()

		require.Error(t, err)
		assert.Equal(t, jdoc2md.EINVALID, jdoc2md.ErrorCode(err))
	})

	t.Run("rejects a table without content locators", func(t *testing.T) {
		t.Parallel()

		table := jdoc2md.DefaultSelectorTable()
		table.Content = nil

		err := table.Validate()

		require.Error(t, err)
		assert.Equal(t, jdoc2md.EINVALID, jdoc2md.ErrorCode(err))
	})

	t.Run("rejects an empty content locator", func(t *testing.T) {
		t.Parallel()

		table := jdoc2md.DefaultSelectorTable()
		table.Content = append(table.Content, jdoc2md.ContentLocator{})

		err := table.Validate()

		require.Error(t, err)
		assert.Equal(t, jdoc2md.EINVALID, jdoc2md.ErrorCode(err))
	})
}

func TestDefaultSelectorTable(t *testing.T) {
	t.Parallel()

	t.Run("strips see-also descriptions before their terms", func(t *testing.T) {
		t.Parallel()

		strip := jdoc2md.DefaultSelectorTable().Strip

		dd := indexOf(strip, "dl.notes dt:contains('See Also:') + dd")
		dt := indexOf(strip, "dl.notes dt:contains('See Also:')")
		require.GreaterOrEqual(t, dd, 0)
		require.GreaterOrEqual(t, dt, 0)
		assert.Less(t, dd, dt)
	})

	t.Run("strips legacy see-also labels before their terms", func(t *testing.T) {
		t.Parallel()

		strip := jdoc2md.DefaultSelectorTable().Strip

		dd := indexOf(strip, "dt:has(.seeLabel) + dd")
		dt := indexOf(strip, "dt:has(.seeLabel)")
		require.GreaterOrEqual(t, dd, 0)
		require.GreaterOrEqual(t, dt, 0)
		assert.Less(t, dd, dt)
		assert.Contains(t, strip, "div.block:has(.deprecatedLabel)")
	})

	t.Run("returns independent copies", func(t *testing.T) {
		t.Parallel()

		a := jdoc2md.DefaultSelectorTable()
		a.Strip[0] = "changed"

		b := jdoc2md.DefaultSelectorTable()

		assert.Equal(t, "script", b.Strip[0])
	})
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

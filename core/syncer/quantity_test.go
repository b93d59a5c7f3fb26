package syncer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelDecoder(t *testing.T) {
	d := LabelDecoder{
		Ceiling:           500,
		CeilingLabels:     []string{"more than 500", "available on request"},
		UnavailableValues: []string{"out of stock", "2"},
	}

	t.Run("PlainInteger", func(t *testing.T) {
		n, err := d.Decode("17")
		assert.NoError(t, err)
		assert.Equal(t, 17, n)
	})

	t.Run("BucketedLabel", func(t *testing.T) {
		n, err := d.Decode(">10")
		assert.NoError(t, err)
		assert.Equal(t, 11, n)

		n, err = d.Decode("> 25")
		assert.NoError(t, err)
		assert.Equal(t, 26, n)
	})

	t.Run("CeilingLabel", func(t *testing.T) {
		n, err := d.Decode("more than 500")
		assert.NoError(t, err)
		assert.Equal(t, 500, n)

		// Case-insensitive
		n, err = d.Decode("Available On Request")
		assert.NoError(t, err)
		assert.Equal(t, 500, n)
	})

	t.Run("UnavailableSentinel", func(t *testing.T) {
		n, err := d.Decode("out of stock")
		assert.NoError(t, err)
		assert.Equal(t, 0, n)

		// A numeric value listed as unavailable decodes to zero, not the
		// number itself.
		n, err = d.Decode("2")
		assert.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("SentinelMatchesDecodedCount", func(t *testing.T) {
		// ">1" decodes to 2, which is listed as unavailable.
		n, err := d.Decode(">1")
		assert.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("NegativeClampedToZero", func(t *testing.T) {
		n, err := d.Decode("-3")
		assert.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("Whitespace", func(t *testing.T) {
		n, err := d.Decode("  42  ")
		assert.NoError(t, err)
		assert.Equal(t, 42, n)
	})

	t.Run("UnknownLabel", func(t *testing.T) {
		_, err := d.Decode("plenty")
		assert.Error(t, err)
	})

	t.Run("MalformedBucket", func(t *testing.T) {
		_, err := d.Decode(">lots")
		assert.Error(t, err)
	})
}

func TestSplitLabels(t *testing.T) {
	assert.Equal(t, []string{"a", "b c", "d"}, SplitLabels("a, b c ,d"))
	assert.Nil(t, SplitLabels(""))
	assert.Nil(t, SplitLabels(" , ,"))
}

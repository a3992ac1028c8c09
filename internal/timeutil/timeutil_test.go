package timeutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/burhanahmeed/tempo/internal/timeutil"
)

func TestFormatMinsAndSecs(t *testing.T) {
	assert.Equal(t, "25:00", timeutil.FormatMinsAndSecs(25, 0))
	assert.Equal(t, "04:09", timeutil.FormatMinsAndSecs(4, 9))
	assert.Equal(t, "00:00", timeutil.FormatMinsAndSecs(0, 0))
}

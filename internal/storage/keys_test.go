package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

func TestValidateExtension(t *testing.T) {
	assert.NoError(t, ValidateExtension(CategoryResume, "cv.pdf"))
	assert.NoError(t, ValidateExtension(CategoryResume, "CV.PDF"))
	assert.NoError(t, ValidateExtension(CategorySubmission, "demo.mp4"))

	err := ValidateExtension(CategoryResume, "malware.exe")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidFileType)

	assert.ErrorIs(t, ValidateExtension(CategoryProfilePic, "clip.mp4"), errors.ErrInvalidFileType)
}

func TestNewKeyLayout(t *testing.T) {
	key := NewKey(CategorySubmission, "Final Report.PDF")
	assert.True(t, strings.HasPrefix(key, "submissions/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotContains(t, key, "Final Report", "original name must not leak into the key")

	other := NewKey(CategorySubmission, "Final Report.PDF")
	assert.NotEqual(t, key, other)
}

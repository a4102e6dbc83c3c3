package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchworks/tasks-backend/internal/domain"
)

func TestValidateID(t *testing.T) {
	t.Run("Should accept a version 4 UUID", func(t *testing.T) {
		raw := uuid.New().String()
		id, err := ValidateID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	})

	t.Run("Should accept a version 5 UUID", func(t *testing.T) {
		raw := uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://example.com/tasks")).String()
		id, err := ValidateID(raw)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(5), id.Version())
	})

	t.Run("Should reject a version 1 UUID", func(t *testing.T) {
		_, err := ValidateID("f47ac10b-58cc-1372-a567-0e02b2c3d479")
		requireViolation(t, err, "id")
	})

	t.Run("Should reject non-UUID text", func(t *testing.T) {
		_, err := ValidateID("not-a-uuid")
		requireViolation(t, err, "id")
	})

	t.Run("Should reject an empty id", func(t *testing.T) {
		_, err := ValidateID("")
		requireViolation(t, err, "id")
	})

	t.Run("Should reject non-canonical UUID forms", func(t *testing.T) {
		canonical := uuid.New().String()
		for _, raw := range []string{
			"urn:uuid:" + canonical,
			"{" + canonical + "}",
			strings.ReplaceAll(canonical, "-", ""),
		} {
			_, err := ValidateID(raw)
			requireViolation(t, err, "id")
		}
	})
}

func TestValidateCreate(t *testing.T) {
	t.Run("Should trim surrounding whitespace", func(t *testing.T) {
		title, err := ValidateCreate(strings.NewReader(`{"title":"  Write spec  "}`))
		require.NoError(t, err)
		assert.Equal(t, "Write spec", title)
	})

	t.Run("Should drop unknown fields", func(t *testing.T) {
		title, err := ValidateCreate(strings.NewReader(`{"title":"ok","priority":3}`))
		require.NoError(t, err)
		assert.Equal(t, "ok", title)
	})

	t.Run("Should accept a 255 character title", func(t *testing.T) {
		long := strings.Repeat("a", 255)
		title, err := ValidateCreate(strings.NewReader(`{"title":"` + long + `"}`))
		require.NoError(t, err)
		assert.Equal(t, long, title)
	})

	t.Run("Should reject a missing title", func(t *testing.T) {
		_, err := ValidateCreate(strings.NewReader(`{}`))
		requireViolation(t, err, "title")
	})

	t.Run("Should reject an empty body", func(t *testing.T) {
		_, err := ValidateCreate(strings.NewReader(""))
		requireViolation(t, err, "title")
	})

	t.Run("Should reject a title that trims to empty", func(t *testing.T) {
		_, err := ValidateCreate(strings.NewReader(`{"title":"   "}`))
		requireViolation(t, err, "title")
	})

	t.Run("Should reject a 256 character title", func(t *testing.T) {
		_, err := ValidateCreate(strings.NewReader(`{"title":"` + strings.Repeat("a", 256) + `"}`))
		requireViolation(t, err, "title")
	})

	t.Run("Should reject a non-string title", func(t *testing.T) {
		_, err := ValidateCreate(strings.NewReader(`{"title":123}`))
		requireViolation(t, err, "title")
	})

	t.Run("Should reject badly-formed JSON", func(t *testing.T) {
		_, err := ValidateCreate(strings.NewReader(`{"title":`))
		requireViolation(t, err, "body")
	})

	t.Run("Should reject trailing content after the JSON value", func(t *testing.T) {
		_, err := ValidateCreate(strings.NewReader(`{"title":"ok"} garbage`))
		requireViolation(t, err, "body")
	})
}

func TestValidateReplace(t *testing.T) {
	t.Run("Should accept both fields", func(t *testing.T) {
		title, completed, err := ValidateReplace(strings.NewReader(`{"title":" Done ","completed":true}`))
		require.NoError(t, err)
		assert.Equal(t, "Done", title)
		assert.True(t, completed)
	})

	t.Run("Should collect every violation", func(t *testing.T) {
		_, _, err := ValidateReplace(strings.NewReader(`{}`))
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 2)
		paths := []string{verr.Violations[0].Path, verr.Violations[1].Path}
		assert.Contains(t, paths, "title")
		assert.Contains(t, paths, "completed")
	})

	t.Run("Should reject a missing completed flag", func(t *testing.T) {
		_, _, err := ValidateReplace(strings.NewReader(`{"title":"ok"}`))
		requireViolation(t, err, "completed")
	})

	t.Run("Should reject a non-boolean completed flag", func(t *testing.T) {
		_, _, err := ValidateReplace(strings.NewReader(`{"title":"ok","completed":"yes"}`))
		requireViolation(t, err, "completed")
	})
}

func TestValidatePatch(t *testing.T) {
	t.Run("Should treat an empty body as the toggle signal", func(t *testing.T) {
		completed, err := ValidatePatch(strings.NewReader(""))
		require.NoError(t, err)
		assert.Nil(t, completed)
	})

	t.Run("Should treat an empty object as the toggle signal", func(t *testing.T) {
		completed, err := ValidatePatch(strings.NewReader(`{}`))
		require.NoError(t, err)
		assert.Nil(t, completed)
	})

	t.Run("Should pass through an explicit value", func(t *testing.T) {
		completed, err := ValidatePatch(strings.NewReader(`{"completed":false}`))
		require.NoError(t, err)
		require.NotNil(t, completed)
		assert.False(t, *completed)
	})

	t.Run("Should reject a non-boolean value", func(t *testing.T) {
		_, err := ValidatePatch(strings.NewReader(`{"completed":1}`))
		requireViolation(t, err, "completed")
	})

	t.Run("Should reject an explicit null", func(t *testing.T) {
		_, err := ValidatePatch(strings.NewReader(`{"completed":null}`))
		requireViolation(t, err, "completed")
	})

	t.Run("Should reject trailing content after the JSON value", func(t *testing.T) {
		_, err := ValidatePatch(strings.NewReader(`{"completed":true}{}`))
		requireViolation(t, err, "body")
	})
}

// requireViolation asserts err is a validation error naming the given path.
func requireViolation(t *testing.T, err error, path string) {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Violations)
	found := false
	for _, v := range verr.Violations {
		assert.NotEmpty(t, v.Message)
		if v.Path == path {
			found = true
		}
	}
	assert.True(t, found, "expected a violation on %q, got %+v", path, verr.Violations)
}

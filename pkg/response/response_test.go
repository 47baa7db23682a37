package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeSuccessShape(t *testing.T) {
	env := Wrap(true)

	b, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ReturnData": true}`, string(b))
}

func TestEnvelopeErrorShape(t *testing.T) {
	env := WrapError[bool](CodeUserNotFound, "user 42 not found", "UserService.Remove")

	b, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"ReturnData": false,
		"Error": {
			"Id": 2,
			"Description": "user 42 not found",
			"Location": "UserService.Remove"
		}
	}`, string(b))
}

func TestCodeStrings(t *testing.T) {
	assert.Equal(t, "None", CodeNone.String())
	assert.Equal(t, "OtherError", CodeOtherError.String())
	assert.Equal(t, "ValidationFailed", CodeValidationFailed.String())
	assert.Equal(t, "Unknown", Code(99).String())
}

func TestCodeValuesAreStable(t *testing.T) {
	assert.EqualValues(t, 0, CodeNone)
	assert.EqualValues(t, 2, CodeUserNotFound)
	assert.EqualValues(t, 5, CodeSessionInvalid)
	assert.EqualValues(t, 9, CodeTokenInvalid)
	assert.EqualValues(t, 14, CodeValidationFailed)
}

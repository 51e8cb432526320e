package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIdentifierIndexes_UseCaseInsensitiveCollation(t *testing.T) {
	models := identifierIndexes()
	require.Len(t, models, 2)

	for i, field := range []Identifier{IdentifierIMEI, IdentifierSerial} {
		keys, ok := models[i].Keys.(bson.D)
		require.True(t, ok)
		assert.Equal(t, "status", keys[0].Key)
		assert.Equal(t, string(field), keys[1].Key)

		require.NotNil(t, models[i].Options)
		require.NotNil(t, models[i].Options.Collation)
		assert.Equal(t, 2, models[i].Options.Collation.Strength)
	}
}

func TestIdentifierQuery_EqualityUnderIndexCollation(t *testing.T) {
	filter, opts := identifierQuery(IdentifierIMEI, "abc123")

	assert.Equal(t, bson.M{"status": StatusLost, "imei": "abc123"}, filter)
	require.NotNil(t, opts.Collation)
	assert.Equal(t, caseInsensitive, opts.Collation)
	assert.Equal(t, identifierIndexes()[0].Options.Collation, opts.Collation)
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, 1, *opts.Limit)
	assert.Equal(t, newestFirst, opts.Sort)
}

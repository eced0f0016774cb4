package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDuplicateStrings(t *testing.T) {
	result := RemoveDuplicateStrings([]string{"a", "b", "a", "", "c"}, []string{"c"})
	assert.Equal(t, []string{"a", "b"}, result)
}

func TestTrimString(t *testing.T) {
	assert.Equal(t, "hello", TrimString("hello", 10))
	assert.Equal(t, "hel", TrimString("hello", 3))
}

func TestLookupEnv(t *testing.T) {
	env := map[string]string{"POSTGRES_HOST": "db.internal", "postgres_port": "5432"}

	assert.Equal(t, "db.internal", LookupEnv(env, "POSTGRES_HOST"))
	assert.Equal(t, "5432", LookupEnv(env, "POSTGRES_PORT"))
	assert.Equal(t, "", LookupEnv(env, "POSTGRES_DB"))
}

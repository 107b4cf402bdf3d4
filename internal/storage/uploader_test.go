package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	assert.Equal(t, "20260314092653_fuga.jpg", ObjectKey(now, "fuga.jpg"))
}

func TestObjectKeyKeepsOriginalName(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	key := ObjectKey(now, "informe final.pdf")
	assert.Equal(t, "20260102030405_informe final.pdf", key)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalSymbol(t *testing.T) {
	assert.Equal(t, "AAPL", CanonicalSymbol("aapl"))
	assert.Equal(t, "BRK.B", CanonicalSymbol("  brk.b "))
	assert.Equal(t, "", CanonicalSymbol(""))
}

func TestCommentAuthorName(t *testing.T) {
	assert.Equal(t, "Anonymous", Comment{}.AuthorName())
	assert.Equal(t, "Anonymous", Comment{AppUser: &AppUser{}}.AuthorName())
	assert.Equal(t, "jane", Comment{AppUser: &AppUser{UserName: "jane"}}.AuthorName())
}

func TestBeforeCreateKeepsExistingID(t *testing.T) {
	u := &AppUser{ID: "fixed"}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, "fixed", u.ID)

	fresh := &AppUser{}
	assert.NoError(t, fresh.BeforeCreate(nil))
	assert.Len(t, fresh.ID, 36)
}

package util

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Baby Hampers", "baby-hampers"},
		{"extra spaces", "  Wedding   Gifts ", "wedding-gifts"},
		{"single word", "Festival", "festival"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestAbsoluteMediaURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{"empty path", "http://api", "", ""},
		{"absolute http", "http://api", "http://cdn/x.jpg", "http://cdn/x.jpg"},
		{"absolute https", "http://api", "https://cdn/x.jpg", "https://cdn/x.jpg"},
		{"absolute upper-case scheme", "http://api", "HTTPS://cdn/x.jpg", "HTTPS://cdn/x.jpg"},
		{"http-like relative name", "http://api", "httpfoo.jpg", "http://api/httpfoo.jpg"},
		{"uploads", "http://api", "/uploads/x.jpg", "/uploads/x.jpg"},
		{"uploads root", "http://api", "/uploads", "/uploads"},
		{"uploads-like prefix", "http://api/api", "/uploadsfoo.jpg", "http://api/api/uploadsfoo.jpg"},
		{"relative", "http://api/api", "media/x.jpg", "http://api/api/media/x.jpg"},
		{"both slashes", "http://api/api/", "/media/x.jpg", "http://api/api/media/x.jpg"},
		{"base slash only", "http://api/", "x.jpg", "http://api/x.jpg"},
		{"path slash only", "http://api", "/x.jpg", "http://api/x.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AbsoluteMediaURL(tt.base, tt.path))
		})
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "", Excerpt("   ", 10))
	assert.Equal(t, "Hello world", Excerpt("<p>Hello <em>world</em></p>", 100))
	assert.Equal(t, "plain text", Excerpt("plain   text", 100))

	long := strings.Repeat("word ", 50)
	got := Excerpt(long, 20)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), 23)
	assert.Equal(t, "word word word word...", got)
}

func TestPassword(t *testing.T) {
	// Arrange
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	// Assert
	assert.True(t, CheckPassword("s3cret-pass", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("s3cret-pass", ""))
}

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	// Arrange
	m := NewJWTManager("test-secret-key", 15*time.Minute)

	// Act
	token, err := m.GenerateToken("admin", RoleAdmin)

	// Assert
	require.NoError(t, err)
	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret-key", -time.Minute)

	token, err := m.GenerateToken("admin", RoleAdmin)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Minute).GenerateToken("admin", RoleAdmin)
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Minute).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Garbage(t *testing.T) {
	_, err := NewJWTManager("secret", time.Minute).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

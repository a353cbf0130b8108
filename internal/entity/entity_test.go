package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "red-mountain-bike", Slugify("Red Mountain Bike"))
	assert.Equal(t, "kids-toys", Slugify("  Kids & Toys!  "))
	assert.Equal(t, "sale-50-off", Slugify("Sale: 50% OFF"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestUserNormalize(t *testing.T) {
	u := &User{Email: "  Jane.Doe@Example.COM ", FirstName: "jANE", LastName: "DOE"}
	u.Normalize()

	assert.Equal(t, "jane.doe@example.com", u.Email)
	assert.Equal(t, "Jane", u.FirstName)
	assert.Equal(t, "Doe", u.LastName)
}

func TestGenerateOTPCode_SixDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}

func TestEmailOTP_Validity(t *testing.T) {
	now := time.Now()
	otp := &EmailOTP{CreatedAt: now.Add(-4 * time.Minute)}
	assert.True(t, otp.IsValid(now))

	otp.CreatedAt = now.Add(-6 * time.Minute)
	assert.False(t, otp.IsValid(now))
}

func TestPasswordResetToken_Expiry(t *testing.T) {
	now := time.Now()
	token := &PasswordResetToken{CreatedAt: now.Add(-29 * time.Minute)}
	assert.False(t, token.IsExpired(now))

	token.CreatedAt = now.Add(-31 * time.Minute)
	assert.True(t, token.IsExpired(now))
}

func TestProductFilter_Window(t *testing.T) {
	// Page-number style.
	f := ProductFilter{Page: 3, PageSize: 20}
	limit, offset := f.Window()
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	// Defaults when nothing is set.
	f = ProductFilter{}
	limit, offset = f.Window()
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)

	// Limit/offset style wins when both are present.
	f = ProductFilter{Limit: 7, Offset: 14, HasLimit: true, Page: 9}
	limit, offset = f.Window()
	assert.Equal(t, 7, limit)
	assert.Equal(t, 14, offset)

	// Negative limit/offset fall back to defaults instead of reaching
	// the query as-is.
	f = ProductFilter{Limit: -1, Offset: -5, HasLimit: true}
	limit, offset = f.Window()
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)
}

func TestCartItem_TotalPrice(t *testing.T) {
	item := &CartItem{Quantity: 3, Product: &Product{Price: 4.5}}
	assert.InDelta(t, 13.5, item.TotalPrice(), 0.0001)

	item.Product = nil
	assert.Zero(t, item.TotalPrice())
}

package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/minhphamdev/banle-api/internal/domain/enum"
)

func day(offset int) time.Time {
	return time.Now().AddDate(0, 0, offset)
}

func TestPromotionStatus(t *testing.T) {
	today := time.Now()

	active := Promotion{StartDate: day(-1), EndDate: day(1)}
	assert.Equal(t, enum.PromoActive, active.Status(today))

	upcoming := Promotion{StartDate: day(1), EndDate: day(2)}
	assert.Equal(t, enum.PromoInactive, upcoming.Status(today))

	expired := Promotion{StartDate: day(-2), EndDate: day(-1)}
	assert.Equal(t, enum.PromoExpired, expired.Status(today))

	exhausted := Promotion{StartDate: day(-1), EndDate: day(1), Quantity: 3, Used: 3}
	assert.Equal(t, enum.PromoInactive, exhausted.Status(today))

	unlimited := Promotion{StartDate: day(-1), EndDate: day(1), Quantity: 0, Used: 999}
	assert.Equal(t, enum.PromoActive, unlimited.Status(today))
}

func TestPromotionStatus_DateBoundariesAreInclusive(t *testing.T) {
	today := time.Now()

	// A rule starting and ending today is active for the whole calendar day
	sameDay := Promotion{StartDate: DateOnly(today), EndDate: DateOnly(today)}
	assert.Equal(t, enum.PromoActive, sameDay.Status(today))

	// The end date itself still counts even late in the day
	endOfDay := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, today.Location())
	assert.Equal(t, enum.PromoActive, sameDay.Status(endOfDay))
}

func TestVoucherStatus(t *testing.T) {
	today := time.Now()

	active := Voucher{StartDate: day(-1), EndDate: day(1)}
	assert.Equal(t, enum.PromoActive, active.Status(today))

	exhausted := Voucher{StartDate: day(-1), EndDate: day(1), Quantity: 1, Used: 1}
	assert.Equal(t, enum.PromoInactive, exhausted.Status(today))

	expired := Voucher{StartDate: day(-2), EndDate: day(-1)}
	assert.Equal(t, enum.PromoExpired, expired.Status(today))
}

func TestNormalizeVoucherCode(t *testing.T) {
	assert.Equal(t, "TET2026", NormalizeVoucherCode("  tet2026 "))

	v := Voucher{Code: "TET2026"}
	assert.True(t, v.MatchesCode("tet2026"))
	assert.False(t, v.MatchesCode("tet2025"))
}

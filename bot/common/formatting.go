package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatBalance formats a balance amount with thousand separators
func FormatBalance(balance int64) string {
	str := strconv.FormatInt(balance, 10)

	sign := ""
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}

	n := len(str)
	if n <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	return result.String()
}

// FormatAmount formats an amount followed by the currency name
func FormatAmount(amount int64, currency string) string {
	return fmt.Sprintf("%s %s", FormatBalance(amount), currency)
}

// FormatOdds renders a multiplier with two decimals, e.g. "x2.50"
func FormatOdds(odds decimal.Decimal) string {
	return "x" + odds.StringFixed(2)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// Mention renders a user mention
func Mention(discordID int64) string {
	return fmt.Sprintf("<@%d>", discordID)
}

//go:build unit

package i18n_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuponbot/internal/pkg/i18n"
)

func TestText(t *testing.T) {
	b := i18n.New()

	t.Run("each language has its own text", func(t *testing.T) {
		uz := b.Text(i18n.UzLatin, i18n.ContactButton)
		cyrl := b.Text(i18n.UzCyrillic, i18n.ContactButton)
		ru := b.Text(i18n.Russian, i18n.ContactButton)

		assert.Equal(t, "📱 Telefon raqamni yuborish", uz)
		assert.Equal(t, "📱 Телефон рақамни юбориш", cyrl)
		assert.Equal(t, "📱 Отправить номер телефона", ru)
	})

	t.Run("unset language falls back to latin uzbek", func(t *testing.T) {
		assert.Equal(t, b.Text(i18n.UzLatin, i18n.GenericError), b.Text("", i18n.GenericError))
		assert.Equal(t, b.Text(i18n.UzLatin, i18n.GenericError), b.Text("de", i18n.GenericError))
	})

	t.Run("arguments are substituted", func(t *testing.T) {
		got := b.Text(i18n.Russian, i18n.RegistrationComplete, "Aziz", "ab12cd34", int64(50000), 30)
		assert.Contains(t, got, "Aziz")
		assert.Contains(t, got, "ab12cd34")
		assert.Contains(t, got, b.Amount(i18n.Russian, 50000))
	})

	t.Run("amounts are grouped", func(t *testing.T) {
		got := b.Amount(i18n.UzLatin, 1250000)
		assert.NotEqual(t, "1250000", got)
		assert.True(t, strings.HasPrefix(got, "1"))
		assert.True(t, strings.HasSuffix(got, "000"))
	})

	t.Run("every key is defined for all languages", func(t *testing.T) {
		for _, lang := range []string{i18n.UzLatin, i18n.UzCyrillic, i18n.Russian} {
			assert.NotEqual(t, string(i18n.MenuHelp), b.Text(lang, i18n.MenuHelp))
			assert.NotEqual(t, string(i18n.BirthdayVoucher), b.Text(lang, i18n.BirthdayVoucher, "x", "y", 1, 1))
		}
	})
}

func TestMenuAction(t *testing.T) {
	b := i18n.New()

	for _, lang := range []string{i18n.UzLatin, i18n.UzCyrillic, i18n.Russian} {
		rows := b.MenuLabels(lang)
		require.Len(t, rows, 3)

		key, ok := b.MenuAction(rows[0][1])
		require.True(t, ok, lang)
		assert.Equal(t, i18n.MenuProfile, key)

		key, ok = b.MenuAction(rows[2][0])
		require.True(t, ok, lang)
		assert.Equal(t, i18n.MenuHelp, key)
	}

	_, ok := b.MenuAction("random text")
	assert.False(t, ok)
}

func TestLanguageButtons(t *testing.T) {
	for _, row := range i18n.LanguageRows() {
		for _, label := range row {
			_, ok := i18n.LanguageButtons[label]
			assert.True(t, ok, label)
		}
	}
}

package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hbk671104/options-calculator/internal/models"
)

const reportTimeLayout = "Jan 2, 2006 3:04 PM"

// Format рендерит текст отчёта. Экспозиции печатаются в переданном порядке,
// сортировка — забота Net.
func Format(accountID string, exposures []models.NetExposure, generatedAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Portfolio Report of %s\n(on %s)\n\n", accountID, generatedAt.Format(reportTimeLayout))
	for _, e := range exposures {
		fmt.Fprintf(&b, "%s: \n%s shorts, %s longs\n\n", e.Symbol, formatQty(e.Short), formatQty(e.Long))
	}
	return b.String()
}

// formatQty печатает количество без хвостовых нулей: 2, не 2.000000.
func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filename — имя файла отчёта; аккаунт + unix-время запуска, чтобы файлы
// разных аккаунтов и запусков не затирали друг друга.
func Filename(accountID string, generatedAt time.Time) string {
	return fmt.Sprintf("report_%s_%d.txt", accountID, generatedAt.Unix())
}

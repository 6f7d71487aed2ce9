package helper

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func init() {
	slug.MaxLength = 100
}

// Slugify: "Kajian Subuh Ahad" -> "kajian-subuh-ahad"; kosong -> "item".
func Slugify(s string) string {
	out := slug.MakeLang(strings.TrimSpace(s), "id")
	if out == "" {
		return "item"
	}
	return out
}

// EnsureUniqueSlug mencari slug unik pada table.column dengan suffix -2, -3, ...
// excludeID (opsional) mengabaikan baris yang sedang di-update (kolom idColumn).
func EnsureUniqueSlug(ctx context.Context, db *gorm.DB, base, table, column, idColumn string, excludeID any) (string, error) {
	q := func() *gorm.DB {
		tx := db.WithContext(ctx).Table(table)
		if excludeID != nil && idColumn != "" {
			tx = tx.Where(fmt.Sprintf("%s <> ?", idColumn), excludeID)
		}
		return tx
	}

	var count int64
	if err := q().Where(fmt.Sprintf("%s = ?", column), base).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return base, nil
	}

	var existing []string
	if err := q().Where(fmt.Sprintf("%s LIKE ?", column), base+"-%").Pluck(column, &existing).Error; err != nil {
		return "", err
	}

	maxN := 1
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `-(\d+)$`)
	for _, s := range existing {
		if m := re.FindStringSubmatch(s); len(m) == 2 {
			var n int
			fmt.Sscanf(m[1], "%d", &n)
			if n > maxN {
				maxN = n
			}
		}
	}
	return fmt.Sprintf("%s-%d", base, maxN+1), nil
}

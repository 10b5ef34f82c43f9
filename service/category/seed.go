package category

import (
	"github.com/weworkhere/server/cmd/models"
	"gorm.io/gorm"
)

var defaultCategories = []models.Category{
	{Slug: "free", NameKo: "자유게시판", NameEn: "General", NameVi: "Tự do", NameNe: "सामान्य", NameKm: "ទូទៅ"},
	{Slug: "visa", NameKo: "비자/체류", NameEn: "Visa & Stay", NameVi: "Visa & Cư trú", NameNe: "भिसा र बसाइ", NameKm: "ទិដ្ឋាការ"},
	{Slug: "labor", NameKo: "노동/권리", NameEn: "Labor Rights", NameVi: "Quyền lao động", NameNe: "श्रम अधिकार", NameKm: "សិទ្ធិការងារ"},
	{Slug: "life", NameKo: "생활정보", NameEn: "Daily Life", NameVi: "Đời sống", NameNe: "दैनिक जीवन", NameKm: "ជីវភាព"},
	{Slug: "jobs", NameKo: "구인구직", NameEn: "Jobs", NameVi: "Việc làm", NameNe: "रोजगार", NameKm: "ការងារ"},
}

// Seed installs the default categories, keyed by slug so reruns are no-ops.
func Seed(db *gorm.DB) error {
	for _, c := range defaultCategories {
		if err := db.Where("slug = ?", c.Slug).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}
	return nil
}

package models

// Category is static reference data; one localized name per supported locale.
type Category struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	NameKo string `gorm:"column:name_ko;size:50;not null" json:"name_ko"`
	NameEn string `gorm:"column:name_en;size:50;not null" json:"name_en"`
	NameVi string `gorm:"column:name_vi;size:50;not null" json:"name_vi"`
	NameNe string `gorm:"column:name_ne;size:50;not null" json:"name_ne"`
	NameKm string `gorm:"column:name_km;size:50;not null" json:"name_km"`
	Slug   string `gorm:"column:slug;size:50;uniqueIndex;not null" json:"slug"`

	Posts []Post `gorm:"foreignKey:CategoryID" json:"-"`
}

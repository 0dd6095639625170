package seeders

import (
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
}

type demoUser struct {
	username, email, password, phone, address string
}

var demoUsers = []demoUser{
	{"alice", "alice@example.com", "alice123", "0901234567", "Hà Nội"},
	{"bob", "bob@example.com", "bob123", "0912345678", "TP. HCM"},
	{"charlie", "charlie@example.com", "charlie123", "0923456789", "Đà Nẵng"},
	{"david", "david@example.com", "david123", "0934567890", "Hải Phòng"},
	{"eva", "eva@example.com", "eva123", "0945678901", "Cần Thơ"},
	{"frank", "frank@example.com", "frank123", "0956789012", "Nha Trang"},
	{"grace", "grace@example.com", "grace123", "0967890123", "Huế"},
	{"henry", "henry@example.com", "henry123", "0978901234", "Vũng Tàu"},
	{"ivy", "ivy@example.com", "ivy123", "0989012345", "Quảng Ninh"},
	{"jack", "jack@example.com", "jack123", "0990123456", "Bình Dương"},
}

// SeedUsers inserts the demo buyers, skipping usernames that already exist.
// All inserts share one transaction.
func SeedUsers(db *gorm.DB, out io.Writer) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, d := range demoUsers {
			var existing models.User
			err := tx.Where("username = ?", d.username).First(&existing).Error
			if err == nil {
				fmt.Fprintf(out, "\n    skip: %s exists (id=%d)", d.username, existing.ID)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			hash, err := auth.HashPassword(d.password)
			if err != nil {
				return fmt.Errorf("hash %s: %w", d.username, err)
			}
			u := models.User{
				Username:     d.username,
				Email:        d.email,
				PasswordHash: hash,
				Phone:        d.phone,
				Address:      d.address,
			}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

package models

import (
	"github.com/rpupo63/portfolio-site-backend/errs"
	"gorm.io/gorm"
)

// singleActiveResume lets at most one resume row carry is_active = true.
// It is checked at commit, because the activation UPDATE flips two rows in
// one statement and a plain unique index is checked row by row.
const singleActiveResume = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'resumes_single_active') THEN
		ALTER TABLE resumes ADD CONSTRAINT resumes_single_active
			EXCLUDE USING btree (is_active WITH =) WHERE (is_active)
			DEFERRABLE INITIALLY DEFERRED;
	END IF;
END $$;`

// All returns every persisted model, in migration order.
func All() []any {
	return []any{
		&Project{},
		&BlogPost{},
		&Testimonial{},
		&ContactSubmission{},
		&Resume{},
	}
}

// Migrate creates or alters the tables for every model and installs the
// constraints AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return errs.NewMigrationError("auto migrate", err)
	}
	if err := db.Exec(singleActiveResume).Error; err != nil {
		return errs.NewMigrationError("single active resume constraint", err)
	}
	return nil
}

// Package internal wires together the shared dependencies handlers
// receive on every request
package internal

import (
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB       *gorm.DB
	Argon    *security.ArgonHash
	Tokens   *security.TokenMaker
	Avatars  service.AvatarStore
	JobQueue *service.JobQueue
}

package models

import (
	"errors"
	"time"

	"githook/internal/db"
	"githook/internal/errmsg"
	"githook/internal/utils"

	sj "github.com/brianvoe/sjwt"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
)

// Operator is a human allowed to read the audit endpoints.
type Operator struct {
	Username string `json:"username" bson:"username"`
	Password string `json:"password,omitempty" bson:"password"`
}

func (op *Operator) GenToken(secret []byte) string {
	claims, _ := sj.ToClaims(Operator{Username: op.Username})
	claims.SetExpiresAt(time.Now().Add(30 * 24 * time.Hour))

	return claims.Generate(secret)
}

func (op *Operator) ParseToken(secret []byte, token string) error {
	if !sj.Verify(token, secret) {
		return errors.New("token signature invalid")
	}

	claims, err := sj.Parse(token)
	if err != nil {
		return err
	}

	if err := claims.Validate(); err != nil {
		return err
	}

	return claims.ToStruct(op)
}

func (op *Operator) Get(username string) error {
	err := db.Operators.FindOne(db.Ctx, bson.M{
		"username": username,
	}).Decode(op)
	if err != nil {
		return err
	}

	if op.Password == "" {
		return errors.New("operator does not exist")
	}

	return nil
}

// OperatorMiddleware guards a route group with operator bearer tokens. The
// token comes from the Authorization header, or from the `token` query
// parameter for websocket handshakes where browsers cannot set headers.
func OperatorMiddleware(secret []byte) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := utils.BearerToken(c.Get("Authorization"))
		if token == "" {
			token = utils.TrimmedQuery(c, "token")
		}

		if token == "" {
			return utils.StatusError(c, errmsg.OperatorNoToken)
		}

		var op Operator
		if err := op.ParseToken(secret, token); err != nil || op.Username == "" {
			return utils.StatusError(c, errmsg.OperatorNoToken)
		}

		utils.SetLocals(c, "operator", op)

		return c.Next()
	}
}

package operators

import (
	"encoding/json"
	"strings"

	"githook/internal/errmsg"
	"githook/internal/events"
	"githook/internal/models"
	"githook/internal/utils"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func loginHandler(jwtSecret []byte) fiber.Handler {
	return func(c fiber.Ctx) error {
		var body models.Operator
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return utils.StatusError(c, errmsg.OperatorInvalidPayload)
		}

		body.Username = strings.TrimSpace(body.Username)
		body.Password = strings.TrimSpace(body.Password)
		if body.Username == "" || body.Password == "" {
			return utils.StatusError(c, errmsg.OperatorInvalidPayload)
		}

		op := models.Operator{}
		if err := op.Get(body.Username); err != nil {
			return utils.StatusError(c, errmsg.OperatorNotExists)
		}

		if bcrypt.CompareHashAndPassword(
			[]byte(op.Password),
			[]byte(body.Password),
		) != nil {
			return utils.StatusError(c, errmsg.OperatorWrongPassword)
		}

		token := op.GenToken(jwtSecret)

		events.Em.OperatorLogin(op.Username)

		op.Password = ""

		return c.JSON(bson.M{
			"token":    token,
			"operator": op,
		})
	}
}

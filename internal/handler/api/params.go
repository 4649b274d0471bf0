package api

import (
	"strconv"

	"kuponbot/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var ErrInvalidTelegramID = errs.Mark(errs.New("telegramId must be a positive integer"), errs.ErrValidation)

func telegramIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("telegramId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidTelegramID
	}
	return id, nil
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"farmmall/internal/middleware"
	"farmmall/internal/usecase"
	"farmmall/internal/validator"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 全APIのレスポンス {code, message, data}
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// 成功時は code 200
func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Response{Code: http.StatusOK, Message: "success", Data: data})
}

func okMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, Response{Code: http.StatusOK, Message: msg})
}

// 201でもエンベロープのcodeは200
func created(c echo.Context, msg string, data any) error {
	return c.JSON(http.StatusCreated, Response{Code: http.StatusOK, Message: msg, Data: data})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, Response{Code: status, Message: msg})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			middleware.LoggerFrom(c).Error("request failed", zap.Error(err))
		}
		return c.JSON(he.Status, Response{Code: he.Status, Message: he.Message, Data: he.Data})
	}

	//500
	middleware.LoggerFrom(c).Error("unexpected error", zap.Error(err))
	return fail(c, http.StatusInternalServerError, "internal error")
}

// echoのエラー（404ルート・405・bindなど）もエンベロープで返す
func HTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok {
				msg = s
			}
			_ = fail(c, he.Code, msg)
			return
		}
		if _, ok := usecase.AsHTTPError(err); ok {
			_ = writeError(c, err)
			return
		}

		log.Error("unhandled error", zap.Error(err), zap.String("path", c.Request().URL.Path))
		_ = fail(c, http.StatusInternalServerError, "internal error")
	}
}

// bindしてvalidateタグで検証する（失敗は400）
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, validator.Message(err))
	}
	return nil
}

// クエリの数値（空や不正なら0）
func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}

// ルート登録で使うミドルウェア一式
type Guards struct {
	Optional echo.MiddlewareFunc // トークンがあれば読む
	User     []echo.MiddlewareFunc
	Admin    []echo.MiddlewareFunc
}

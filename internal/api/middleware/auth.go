package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hertz-contrib/keyauth"
)

const (
	// CtxKeyUserID 认证通过后写入RequestContext的用户ID键
	CtxKeyUserID = "user_id"
	// CtxKeyUserEmail 认证通过后写入RequestContext的用户邮箱键
	CtxKeyUserEmail = "user_email"
)

// JWTAuth 返回校验Bearer JWT的hertz中间件。
// token使用HS256签名，sub声明作为用户ID，email声明作为用户邮箱。
func JWTAuth(secret string) app.HandlerFunc {
	return keyauth.New(
		keyauth.WithKeyLookUp("header:Authorization", "Bearer"),
		keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, token string) (bool, error) {
			claims := jwt.MapClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("不支持的签名算法: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !parsed.Valid {
				return false, fmt.Errorf("无效的token: %w", err)
			}

			sub, err := claims.GetSubject()
			if err != nil || strings.TrimSpace(sub) == "" {
				return false, fmt.Errorf("token缺少sub声明")
			}
			ctx.Set(CtxKeyUserID, sub)

			if email, ok := claims["email"].(string); ok {
				ctx.Set(CtxKeyUserEmail, email)
			}
			return true, nil
		}),
		keyauth.WithErrorHandler(func(c context.Context, ctx *app.RequestContext, err error) {
			ctx.JSON(consts.StatusUnauthorized, utils.H{"error": "未认证或token无效"})
			ctx.Abort()
		}),
	)
}

// CurrentUserID 从RequestContext中取出认证用户ID。
func CurrentUserID(ctx *app.RequestContext) string {
	if v, exists := ctx.Get(CtxKeyUserID); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

package jwt

import (
	"context"
	"strconv"
	"time"
	"tradediary/conf"
	"tradediary/pkg/cache"
	"tradediary/pkg/logger"
	"tradediary/utils/security"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"
)

type CustomClaims struct {
	UserId int64  `json:"user_id"`
	Sub    string `json:"sub"`
	jwt.RegisteredClaims
}

func BuildClaims(exp time.Time, uid int64) *CustomClaims {
	return &CustomClaims{
		UserId: uid,
		Sub:    "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    conf.AppConfig.AppName,
		},
	}
}

func GenToken(c *CustomClaims, secretKey string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	ss, err := token.SignedString([]byte(secretKey))
	return ss, err
}

// 解析jwt token
func ParseToken(jwtStr, secretKey string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(jwtStr, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, err
	} else {
		return nil, err
	}
}

func getBlackListKey(token string) string {
	return "jwt_black_list:" + security.Md5(token)
}

// JoinBlackList 登出时把token加入黑名单直到自然过期
func JoinBlackList(ctx context.Context, tokenStr string, secretKey string) (err error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return err
	}
	nowUnix := time.Now().Unix()
	timer := time.Duration(token.Claims.(*CustomClaims).ExpiresAt.Unix()-nowUnix) * time.Second
	rc := cache.GetRedisClient()
	err = rc.SetNX(ctx, getBlackListKey(token.Raw), nowUnix, timer).Err()
	return
}

func IsInBlackList(ctx context.Context, token string) bool {
	rc := cache.GetRedisClient()
	joinUnixStr, err := rc.Get(ctx, getBlackListKey(token)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Errorf("Redis连接异常:%v", err.Error())
		}
		return false
	}
	joinUnix, err := strconv.ParseInt(joinUnixStr, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().Unix()-joinUnix < conf.AppConfig.Jwt.JwtBlacklistGracePeriod {
		return false
	}
	return true
}

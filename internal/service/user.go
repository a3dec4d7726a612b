package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"
	"tradediary/conf"
	"tradediary/internal/consts"
	"tradediary/internal/dao"
	"tradediary/internal/model"
	"tradediary/internal/model/entity"
	"tradediary/pkg/cache"
	"tradediary/pkg/jwt"
	"tradediary/pkg/logger"
	"tradediary/pkg/verification"
	"tradediary/utils/security"
	"tradediary/utils/uuid"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type UserService interface {
	UserRegister(ctx *gin.Context, req model.UserRegisterReq) (res model.UserRegisterRes, err error)
	UserLogin(ctx *gin.Context, username, password string) (res model.UserLoginRes, err error)
	UserLogout(ctx context.Context, tokenStr string) error
	UserGetInfo(ctx context.Context, userId int64) (res model.UserGetInfoRes, err error)
	UserVerifyUsername(ctx context.Context, username string) (isValid bool, err error)
	UserVerifyEmail(ctx context.Context, email string) (isValid bool, err error)

	CaptchaGen(ctx *gin.Context) (res model.CaptchaRes, err error)
	CaptchaVerify(ctx *gin.Context, code string) bool
}

// userService 实现UserService接口
type userService struct {
	ud   dao.UserDao
	iSrv *uuid.SnowNode
	rc   *redis.Client
}

func NewUserService(ud dao.UserDao) *userService {
	return &userService{
		ud:   ud,
		iSrv: uuid.NewNode(1),
		rc:   cache.GetRedisClientOrNil(),
	}
}

func (u *userService) UserRegister(ctx *gin.Context, req model.UserRegisterReq) (res model.UserRegisterRes, err error) {
	res.IsSuccess = false

	user := entity.User{}
	user.Id = u.iSrv.GenSnowID()
	user.Username = req.Username
	user.Nickname = req.Username
	user.Email = req.Email
	user.RegisteredIp = ctx.ClientIP()

	// 加密密码存储
	user.Password, err = security.Encrypt(req.Password)
	if err != nil {
		return res, err
	}
	err = u.ud.UserCreate(ctx, &user)
	if err != nil {
		return res, err
	}
	res.IsSuccess = true
	ctx.Set(consts.UserID, user.Id)
	return
}

func (u *userService) UserLogin(ctx *gin.Context, username, password string) (res model.UserLoginRes, err error) {
	user, err := u.ud.UserGetByName(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, errors.New("用户不存在")
		}
		return res, err
	}
	if !security.Verify(password, user.Password) {
		return res, errors.New("密码错误")
	}

	ttl := conf.AppConfig.Jwt.JwtTtl
	if ttl <= 0 {
		ttl = 86400
	}
	exp := time.Now().Add(time.Duration(ttl) * time.Second)
	token, err := jwt.GenToken(jwt.BuildClaims(exp, user.Id), conf.AppConfig.Jwt.Secret)
	if err != nil {
		return res, err
	}
	ctx.Set(consts.UserID, user.Id)
	res.Token = token
	res.Timeout = int(ttl)
	return res, nil
}

func (u *userService) UserLogout(ctx context.Context, tokenStr string) error {
	return jwt.JoinBlackList(ctx, tokenStr, conf.AppConfig.Jwt.Secret)
}

func (u *userService) UserGetInfo(ctx context.Context, userId int64) (res model.UserGetInfoRes, err error) {
	rdsKey := consts.UserInfoPrefix + strconv.FormatInt(userId, 10)
	// 先从缓存中查找
	if u.rc != nil {
		jsonBytes, cacheErr := u.rc.Get(ctx, rdsKey).Bytes()
		if cacheErr == nil {
			if jsonErr := json.Unmarshal(jsonBytes, &res); jsonErr == nil {
				return res, nil
			}
		} else if cacheErr != redis.Nil {
			logger.Warnf("读取用户缓存失败：%v", cacheErr)
		}
	}

	info, err := u.ud.UserGetById(ctx, userId)
	if err != nil {
		return res, err
	}
	res = model.UserGetInfoRes{
		UserId:   info.UserId,
		Username: info.Username,
		Nickname: info.Nickname,
		Email:    info.Email,
	}
	if u.rc != nil {
		if data, jsonErr := json.Marshal(res); jsonErr == nil {
			u.rc.Set(ctx, rdsKey, data, consts.RedisExrDefault)
		}
	}
	return res, nil
}

func (u *userService) UserVerifyUsername(ctx context.Context, username string) (bool, error) {
	count, err := u.ud.UserVerifyUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (u *userService) UserVerifyEmail(ctx context.Context, email string) (bool, error) {
	count, err := u.ud.UserVerifyEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (u *userService) CaptchaGen(ctx *gin.Context) (res model.CaptchaRes, err error) {
	image, err := verification.GenerateCaptcha(ctx)
	if err != nil {
		return res, err
	}
	res.Image = image
	return res, nil
}

func (u *userService) CaptchaVerify(ctx *gin.Context, code string) bool {
	return verification.VerifyCaptcha(ctx, code)
}

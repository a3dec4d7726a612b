package user

import (
	"tradediary/internal/consts"
	"tradediary/internal/model"
	"tradediary/internal/service"
	"tradediary/pkg/errors"
	"tradediary/pkg/errors/ecode"
	"tradediary/pkg/logger"
	"tradediary/pkg/response"
	"tradediary/pkg/validator"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// @Summary		用户注册接口
// @title			Swagger API
// @version		1.0
// @description	用户注册接口
// @Accept			json
// @Produce		json
// @Param			username	body		string	true	"用户名"
// @Param			password	body		string	true	"密码"
// @Param			email		body		string	true	"邮箱"
// @Param			captcha		body		string	true	"验证码"
// @Success		200			{object}	response.ApiResponse{data=model.UserRegisterRes}
// @Router			/api/v1/auth/register [post]
func (handler *UserHandler) UserRegister() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UserRegisterReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "请求参数错误"), nil)
			return
		}

		// 验证验证码是否正确
		if !handler.service.CaptchaVerify(ctx, req.Captcha) {
			response.JSON(ctx, errors.WithCode(ecode.CaptchaErr, "验证码错误"), nil)
			return
		}

		nameOk, err := handler.service.UserVerifyUsername(ctx, req.Username)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "注册校验失败"), nil)
			logger.Error(err.Error())
			return
		}
		emailOk, err := handler.service.UserVerifyEmail(ctx, req.Email)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "注册校验失败"), nil)
			logger.Error(err.Error())
			return
		}
		if !nameOk || !emailOk {
			response.JSON(ctx, errors.WithCode(ecode.UserRegisterErr, "用户名或邮箱已被注册"), nil)
			return
		}

		res, err := handler.service.UserRegister(ctx, req)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.UserRegisterErr, "发生错误注册失败"), nil)
			logger.Error(err.Error())
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		用户登陆
// @Description	用户密码登陆
// @Accept			json
// @Produce		json
// @Param			username	body		string	true	"用户名"
// @Param			password	body		string	true	"密码"
// @Param			captcha		body		string	true	"验证码"
// @Success		200			{object}	response.ApiResponse{data=model.UserLoginRes}
// @Router			/api/v1/auth/login [post]
func (handler *UserHandler) UserLogin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UserLoginReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		if !handler.service.CaptchaVerify(ctx, req.Captcha) {
			response.JSON(ctx, errors.WithCode(ecode.CaptchaErr, "验证码错误"), nil)
			return
		}

		res, err := handler.service.UserLogin(ctx, req.Username, req.Password)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.UserLoginErr, "登陆失败：账号或密码错误"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		用户退出登陆
// @title			Journal API
// @version		1.0
// @description	用户退出登陆时可调用此api，用来将用户token失效的
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse
// @Router			/api/v1/user/logout [get]
func (handler *UserHandler) UserLogout() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenStr := ctx.GetString(consts.JWTTokenCtx)
		if err := handler.service.UserLogout(ctx, tokenStr); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.UserLoginErr, "登出失败"), nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

// @Summary		获取用户详情
// @title			Journal API
// @version		1.0
// @description	用来获取当前登陆用户的详细信息
// @Produce		json
// @Param			Authorization	header		string	false	"Bearer 用户令牌"
// @Success		200				{object}	response.ApiResponse{data=model.UserGetInfoRes}
// @Router			/api/v1/user/info [get]
func (handler *UserHandler) UserGetInfo() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId := ctx.GetInt64(consts.UserID)
		res, err := handler.service.UserGetInfo(ctx, userId)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.NotFoundErr, "未找到用户信息"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

// @Summary		获取验证码
// @title			Swagger API
// @version		1.0
// @description	获取验证码用来进行安全验证
// @Produce		json
// @Success		200	{object}	response.ApiResponse{data=model.CaptchaRes}	"desc"
// @Router			/api/v1/auth/captcha [post]
func (handler *UserHandler) CaptchaGen() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res, err := handler.service.CaptchaGen(ctx)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "验证码获取失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

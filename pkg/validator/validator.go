package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	zhtrans "github.com/go-playground/validator/v10/translations/zh"
)

// 替换gin默认的validator，支持label标签和中英文翻译

var (
	once  sync.Once
	trans ut.Translator
)

type ginValidator struct {
	validate *val.Validate
}

var _ binding.StructValidator = (*ginValidator)(nil)

func (v *ginValidator) ValidateStruct(obj interface{}) error {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	if err := v.validate.Struct(obj); err != nil {
		return err
	}
	return nil
}

func (v *ginValidator) Engine() interface{} {
	return v.validate
}

// LazyInitGinValidator 初始化gin的参数校验器，language为zh或en
func LazyInitGinValidator(language string) {
	once.Do(func() {
		validate := val.New()
		validate.SetTagName("validate")

		// 错误信息里优先使用label标签里的中文名
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			label := field.Tag.Get("label")
			if label != "" {
				return label
			}
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		zhLoc := zh.New()
		enLoc := en.New()
		uni := ut.New(enLoc, zhLoc, enLoc)

		var found bool
		switch language {
		case "zh":
			trans, found = uni.GetTranslator("zh")
			if found {
				_ = zhtrans.RegisterDefaultTranslations(validate, trans)
			}
		default:
			trans, found = uni.GetTranslator("en")
			if found {
				_ = entrans.RegisterDefaultTranslations(validate, trans)
			}
		}

		binding.Validator = &ginValidator{validate: validate}
	})
}

// Translate 把校验错误翻译成用户可读的提示
func Translate(err error) string {
	if err == nil {
		return ""
	}
	errs, ok := err.(val.ValidationErrors)
	if !ok || trans == nil {
		return err.Error()
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Translate(trans))
	}
	return strings.Join(msgs, "; ")
}

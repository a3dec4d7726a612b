package utils

import (
	"database/sql/driver"
	"fmt"
	"time"
	"tradediary/internal/consts"
)

// JsonTime 统一时间的json序列化格式，数据库读写走gorm的Scanner/Valuer
type JsonTime time.Time

func (t JsonTime) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", tt.Format(consts.TimeLayout))), nil
}

func (t *JsonTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `""` || s == "null" {
		*t = JsonTime(time.Time{})
		return nil
	}
	tt, err := time.ParseInLocation(`"`+consts.TimeLayout+`"`, s, time.Local)
	if err != nil {
		return err
	}
	*t = JsonTime(tt)
	return nil
}

func (t JsonTime) Value() (driver.Value, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return nil, nil
	}
	return tt, nil
}

func (t *JsonTime) Scan(v interface{}) error {
	switch value := v.(type) {
	case time.Time:
		*t = JsonTime(value)
		return nil
	case nil:
		*t = JsonTime(time.Time{})
		return nil
	default:
		return fmt.Errorf("can not convert %v to JsonTime", v)
	}
}

func (t JsonTime) String() string {
	return time.Time(t).Format(consts.TimeLayout)
}

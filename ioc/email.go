package ioc

import (
	"context"

	"github.com/ecodeclub/mall/internal/email"
	"github.com/ecodeclub/mall/internal/email/aliyun"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
)

func InitEmailService() email.Service {
	type Config struct {
		AccessKeyID     string `yaml:"accessKeyId"`
		AccessKeySecret string `yaml:"accessKeySecret"`
		AccountName     string `yaml:"accountName"`
	}
	var cfg Config
	err := econf.UnmarshalKey("email.aliyun", &cfg)
	if err != nil {
		panic(err)
	}
	if cfg.AccessKeyID == "" {
		// 本地开发不配邮件凭证, 降级为仅记日志
		elog.DefaultLogger.Warn("未配置邮件服务凭证, 邮件降级为日志输出")
		return &logOnlyEmailService{logger: elog.DefaultLogger}
	}
	svc, err := aliyun.NewAliyunDirectMailAPI(cfg.AccessKeyID, cfg.AccessKeySecret, cfg.AccountName)
	if err != nil {
		panic(err)
	}
	return svc
}

type logOnlyEmailService struct {
	logger *elog.Component
}

func (s *logOnlyEmailService) SendMail(_ context.Context, mail email.Mail) error {
	s.logger.Info("发送邮件",
		elog.String("to", mail.To),
		elog.String("subject", mail.Subject))
	return nil
}

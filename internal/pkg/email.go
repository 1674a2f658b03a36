package pkg

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人，可与 Username 相同
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// ResponseNotifyHTML 管理员处理申请后的通知邮件正文
func ResponseNotifyHTML(kind, title, status, message string) string {
	body := fmt.Sprintf(`<p>您好，</p><p>您提交的%s <b>%s</b> 已被处理，结果：<b>%s</b>。</p>`, kind, title, status)
	if message != "" {
		body += fmt.Sprintf(`<p>管理员留言：%s</p>`, message)
	}
	return body
}

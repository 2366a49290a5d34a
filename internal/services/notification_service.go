// internal/services/notification_service.go
package services

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Jiu-020812/orange-fanta-back/internal/config"
	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{db: db, config: cfg}
}

// SendLowStockAlert mails the item owner that on-hand stock reached the
// alert threshold. Best-effort: without SMTP credentials it only logs.
func (s *NotificationService) SendLowStockAlert(item *models.Item, stock int) error {
	var user models.User
	if err := s.db.Where("id = ?", item.UserID).First(&user).Error; err != nil {
		return fmt.Errorf("failed to load item owner: %w", err)
	}

	subject := fmt.Sprintf("Low stock: %s", item.Name)
	body := fmt.Sprintf(
		"Stock for %s %s dropped to %d (threshold %d). Time to reorder.",
		item.Name, item.Variant, stock, item.LowStockThreshold,
	)

	if s.config.Email.SMTPUsername == "" {
		logrus.WithFields(logrus.Fields{
			"item_id": item.ID,
			"email":   user.Email,
			"stock":   stock,
		}).Info("Low stock alert (email disabled)")
		return nil
	}

	return s.sendEmail(user.Email, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	auth := smtp.PlainAuth("",
		s.config.Email.SMTPUsername,
		s.config.Email.SMTPPassword,
		s.config.Email.SMTPHost,
	)

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body)

	addr := s.config.Email.SMTPHost + ":" + s.config.Email.SMTPPort
	if err := smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

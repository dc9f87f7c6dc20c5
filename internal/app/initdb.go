package app

import (
	"errors"
	"strings"
	"time"

	"github.com/talkincode/auctiontrack/internal/domain"
	"github.com/talkincode/auctiontrack/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "auctiontrack"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     "N/A",
			Username:  superUsername,
			Password:  hashedPassword,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetLevel := !strings.EqualFold(operator.Level, "super")
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetLevel {
		updates["level"] = "super"
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

// defaultSettings are the sys_config entries seeded on first start.
var defaultSettings = []domain.SysConfig{
	{Sort: 1, Type: "tracker", Name: "DefaultExchangeRate", Value: "7.14",
		Remark: "RMB per USD applied when an auction has no rate"},
	{Sort: 2, Type: "tracker", Name: "DefaultCommissionRate", Value: "0.02",
		Remark: "Commission rate applied when an auction has no house"},
	{Sort: 3, Type: "tracker", Name: "OprLogRetentionDays", Value: "365",
		Remark: "Days to keep operator action logs"},
	{Sort: 4, Type: "metabase", Name: "DashboardId", Value: "8",
		Remark: "Embedded analytics dashboard id"},
}

func (a *Application) checkSettings() {
	for _, cfg := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", cfg.Type, cfg.Name).
			Count(&count)

		if count == 0 {
			cfg.ID = common.UUIDint64()
			if err := a.gormDB.Create(&cfg).Error; err != nil {
				zap.L().Error("failed to initialize config",
					zap.String("name", cfg.Name), zap.Error(err))
				continue
			}
			zap.L().Info("initialized config",
				zap.String("key", cfg.Type+"."+cfg.Name),
				zap.String("default", cfg.Value))
		}
	}
}

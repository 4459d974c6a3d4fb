package service

import (
	"fmt"

	"tisa/internal/jalali"
	"tisa/internal/ledger/models"
)

// Notification messages are already-formatted HTML strings; the dispatcher
// only transports them. Bodies use the small tag set the bot API accepts
// (<b>, <code>).

func createMessage(c models.Check) string {
	return fmt.Sprintf(
		"✅ <b>ثبت چک جدید در سیستم</b>\n\n👤 صادرکننده: %s\n💰 مبلغ: %s\n📅 سررسید: %s\n🆔 صیاد: <code>%s</code>",
		c.Issuer, jalali.FormatRial(c.Amount), jalali.Format(c.DueDate), c.SayadID,
	)
}

func statusChangeMessage(c models.Check) string {
	return fmt.Sprintf(
		"🔔 <b>تغییر وضعیت چک</b>\n\n👤 صادرکننده: %s\n💰 مبلغ: %s\n🔄 وضعیت جدید: <b>%s</b>\n📅 سررسید: %s",
		c.Issuer, jalali.FormatRial(c.Amount), c.Status, jalali.Format(c.DueDate),
	)
}

func deleteMessage(c models.Check) string {
	return fmt.Sprintf(
		"🗑 <b>حذف سند مالی</b>\n\nسند متعلق به <b>%s</b> به مبلغ %s از سیستم حذف گردید.",
		c.Issuer, jalali.FormatRial(c.Amount),
	)
}

func reminderMessage(c models.Check, daysRemaining int) string {
	return fmt.Sprintf(
		"⏰ <b>یادآوری سررسید چک (کمتر از %d روز)</b>\n\n⚠️ هشدار: سررسید چک <b>%s</b> نزدیک است.\n💰 مبلغ: %s\n📅 تاریخ: %s\n🏦 بانک: %s",
		daysRemaining, c.Issuer, jalali.FormatRial(c.Amount), jalali.Format(c.DueDate), c.BankName,
	)
}

func createDetails(c models.Check) string {
	return fmt.Sprintf("سند جدید با مبلغ %d درج شد.", c.Amount)
}

func editDetails(c models.Check) string {
	return fmt.Sprintf("چک شماره %s بروزرسانی شد.", c.CheckNumber)
}

func deleteDetails() string {
	return "سند مالی از دیتابیس حذف گردید."
}

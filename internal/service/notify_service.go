package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"reservasalas/internal/entities"
)

type NotifyService struct {
	loc *time.Location
}

func NewNotifyService(loc *time.Location) *NotifyService {
	return &NotifyService{loc: loc}
}

// SendReservationEmail mails the holder about a reservation state change.
// Sending happens in a goroutine so the request path never waits on SendGrid.
func (s *NotifyService) SendReservationEmail(reservation entities.ReservationDetail, toName, status string) {
	emailData := entities.ReservationEmailData{
		UserName:           toName,
		RoomName:           reservation.Room.Name,
		StartTimeFormatted: reservation.StartAt.In(s.loc).Format("02 Jan 2006 15:04"),
		EndTimeFormatted:   reservation.EndAt.In(s.loc).Format("02 Jan 2006 15:04"),
		Status:             status,
		CurrentYear:        time.Now().In(s.loc).Year(),
	}

	emailSubject := fmt.Sprintf("Tu reserva de %s está %s", emailData.RoomName, status)
	plainTextBody := fmt.Sprintf(
		"Hola %s,\n\nTu reserva de sala de estudio está %s.\n\n"+
			"Detalles de la reserva:\n"+
			"Sala: %s\n"+
			"Inicio: %s\n"+
			"Término: %s\n\n"+
			"Reserva Salas. Todos los derechos reservados.",
		emailData.UserName, status, emailData.RoomName,
		emailData.StartTimeFormatted, emailData.EndTimeFormatted,
	)

	tmplPath := filepath.Join("internal", "templates", "reservation_email.html")
	htmlBody := ""
	if tmpl, err := template.ParseFiles(tmplPath); err != nil {
		log.Printf("ALERTA: Error al parsear la plantilla de correo HTML (%s): %v", tmplPath, err)
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, emailData); err != nil {
			log.Printf("ALERTA: Error al ejecutar la plantilla de correo para reserva %s: %v", reservation.ID, err)
		} else {
			htmlBody = buf.String()
		}
	}

	go func(toEmail, userName, subject, plainBody, htmlContent string) {
		if err := SendEmailWithSendGrid(toEmail, userName, subject, plainBody, htmlContent); err != nil {
			log.Printf("ALERTA (asíncrono): Falló envío de correo para reserva %s: %v", reservation.ID, err)
		}
	}(reservation.HolderEmail, emailData.UserName, emailSubject, plainTextBody, htmlBody)
}

func SendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	sendgridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendgridAPIKey == "" {
		log.Println("ADVERTENCIA: SENDGRID_API_KEY no está configurada. El correo no se enviará.")
		return fmt.Errorf("SENDGRID_API_KEY no está configurada")
	}

	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		log.Println("ADVERTENCIA: SENDGRID_FROM_EMAIL no está configurada. El correo no se enviará.")
		return fmt.Errorf("SENDGRID_FROM_EMAIL no está configurada")
	}

	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Reserva Salas"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error al intentar enviar correo vía SendGrid a %s: %v", toEmailAddress, err)
		return fmt.Errorf("falló el envío del correo a través de SendGrid: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Correo enviado exitosamente a %s (Asunto: %s). Estado: %d", toEmailAddress, subject, response.StatusCode)
		return nil
	}

	log.Printf("Error al enviar correo a %s vía SendGrid. Estado: %d, Cuerpo: %s",
		toEmailAddress, response.StatusCode, response.Body)
	return fmt.Errorf("SendGrid devolvió un estado no exitoso %d: %s", response.StatusCode, response.Body)
}

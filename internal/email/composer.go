// Package email builds and delivers the guest notification emails and keeps
// the audit trail of every attempt.
package email

import (
	"bytes"
	"html/template"
	"time"

	"github.com/comedyuo/shows-backend/internal/model"
)

// MessagePlaceholder is rendered when a guest submits no custom message.
const MessagePlaceholder = "No custom message provided."

// doorsLead is how long before showtime doors open.
const doorsLead = 30 * time.Minute

// Display formats used inside the email body.
const (
	dateLayout  = "Monday, January 02"
	clockLayout = "03:04 PM"
)

type templateData struct {
	Title       string
	ShowDate    string
	ShowTime    string
	DoorsTime   string
	GuestName   string
	GuestEmail  string
	Location    string
	Description string
	Message     string
}

// Compose renders the guest notification email for a show.  It is a pure
// string-template operation; the only branch is the message fallback.
func Compose(show *model.Show, inq model.EmailInquiry) (string, error) {
	msg := inq.Message
	if msg == "" {
		msg = MessagePlaceholder
	}
	data := templateData{
		Title:       show.Title,
		ShowDate:    show.StartTime.Format(dateLayout),
		ShowTime:    show.StartTime.Format(clockLayout),
		DoorsTime:   show.StartTime.Add(-doorsLead).Format(clockLayout),
		GuestName:   inq.GuestName,
		GuestEmail:  inq.GuestEmail,
		Location:    show.Location,
		Description: show.Description,
		Message:     msg,
	}
	var buf bytes.Buffer
	if err := showTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var showTemplate = template.Must(template.New("show-details").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Inter, Arial; background-color: #feffff !important; padding: 0; margin: 0;">
  <div>
    <div dir="ltr" style="margin: 0px; width: 100%; padding: 0px; font-family: arial, sans-serif; color: #444a5b !important;">
      <table style="margin-left: auto; margin-right: auto; margin-top: 0px; margin-bottom: 0px; width: 100%; border-collapse: collapse; padding: 0px;">
        <tr>
          <th>
            <span style="justify-content: center">
              <div style="text-align: center">
                <img style="height: 175px; margin-top: 40px" src="https://cuo-email-photos.s3.us-east-1.amazonaws.com/cuo-white-logo.png" alt="ComedyUO" />
              </div>
            </span>
          </th>
        </tr>
      </table>
      <table role="presentation" valign="top" border="0" cellspacing="0" cellpadding="20" align="center" style="border-collapse: collapse; margin-left: auto; margin-right: auto; margin-top: 0px; margin-bottom: 0px; width: 600px; max-width: 600px; padding: 0px; font-size: 14px; color: #444a5b !important;">
        <tr>
          <td style="padding: 8px" align="center">
            <p style="font-size: 25px; margin: 0px; line-height: 35px; padding-top: 30px; color: #1a307a;">
              <strong>{{.Title}}</strong>
            </p>
            <p style="font-size: 22px; margin: 0px; margin-top: 20px; margin-bottom: 10px; color: #1a307a;">
              {{.ShowDate}}
            </p>
          </td>
        </tr>
        <tr>
          <td style="padding: 8px">
            <div style="line-height: 28px">
              <div style="text-align: center">
                <p style="font-size: 18px; color: #1a307a">
                  <strong>Hi {{.GuestName}}!</strong>
                </p>
                <p style="font-size: 18px; margin: 0px">
                  Here is the exclusive link to our comedy show at<br />@<br />
                  <b>{{.Location}}</b>
                </p>
              </div>
              <div>
                <p style="text-align: center; font-size: 18px">
                  {{.ShowDate}}<br />
                  Timing<br />
                  Doors open: {{.DoorsTime}}<br />
                  Show start: {{.ShowTime}}<br />
                  <br />
                  {{.Description}}
                  <br /><br />
                </p>
              </div>
              <div style="text-align: center; padding: 30px">
                <a href="https://shop.comedyuo.com" target="_blank" style="font-size: 16px; padding: 15px; border: none; cursor: pointer; color: white; background-color: #1a307a; border-radius: 5px; text-decoration: none;">
                  GET YOUR TICKETS HERE
                </a>
              </div>
            </div>
          </td>
        </tr>
        <tr>
          <td>
            <div style="line-height: 22px">
              <div style="text-align: center">
                <p style="font-size: 16px">All lineups are a surprise!</p>
              </div>
            </div>
            <div style="text-align: center">
              <p style="font-size: 16px">
                If you have questions, feel free to DM us @comedy.uo on Instagram. Hope to see you there!
              </p>
              <p style="font-size: 16px">
                If you can't make it join the <a href="https://app.comedyuo.com/waitlist">waitlist</a> to get the latest on our upcoming shows &#10084;&#65039;
              </p>
              <div style="padding: 10px">
                <a href="https://app.comedyuo.com/waitlist" target="_blank" style="font-size: 16px; cursor: pointer; padding: 5px 10px; border: 1px solid #1a307a; color: #1a307a; background-color: white; border-radius: 3px; text-decoration: none;">
                  JOIN THE WAITLIST
                </a>
              </div>
            </div>
            <div style="line-height: 22px">
              <div style="text-align: center; font-style: italic">
                <p>&mdash;</p>
              </div>
              <div style="text-align: center; font-style: italic">
                <p>An important note on timing: doors open time for the show is 30 minutes prior to showtime. Come early to enjoy food &amp; drinks.</p>
              </div>
              <div style="text-align: center; font-style: italic">
                <p>While we encourage you to take pictures and videos of the space, filming the comics is strictly prohibited.</p>
              </div>
              <div style="text-align: center; font-style: italic">
                <p>This is a 21+ event - security will be checking tickets and ID's.</p>
              </div>
              <div style="text-align: center; font-style: italic">
                <p>If you have any questions, please reach out to us via Instagram @comedy.uo or email us at admin@comedyuo.com</p>
              </div>
              <div style="text-align: center; font-style: italic; margin-top: 20px; padding-top: 20px; border-top: 1px solid #e0e0e0;">
                <p style="font-size: 14px; color: #666;">
                  <strong>Guest Inquiry Details:</strong><br />
                  Guest: {{.GuestName}} ({{.GuestEmail}})<br />
                  Message: {{.Message}}
                </p>
              </div>
            </div>
          </td>
        </tr>
      </table>
    </div>
  </div>
</body>
</html>`))

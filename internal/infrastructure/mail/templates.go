package mail

import "html/template"

// The two transactional templates. Links point at the frontend routes that
// drive the set-password and reset-password flows.

var userCreatedTemplate = template.Must(template.New("user_created").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f6f7fb; color: #1f2937;">
  <div style="max-width: 520px; margin: 24px auto; background: #ffffff; border-radius: 12px; border: 1px solid #e5e7eb; padding: 24px;">
    <h2>Welcome, {{.User.FirstName}}</h2>
    <p>An account has been created for you. Choose a password to activate it:</p>
    <p><a href="{{.URL}}" style="display: inline-block; padding: 12px 20px; background: #22c55e; color: #ffffff; text-decoration: none; border-radius: 8px; font-weight: bold;">Set your password</a></p>
    <p style="font-size: 12px; color: #6b7280;">If the button does not work, open {{.URL}} in your browser.</p>
  </div>
</body>
</html>`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f6f7fb; color: #1f2937;">
  <div style="max-width: 520px; margin: 24px auto; background: #ffffff; border-radius: 12px; border: 1px solid #e5e7eb; padding: 24px;">
    <h2>Password reset</h2>
    <p>Hello {{.User.FirstName}}, a password reset was requested for your account.</p>
    <p><a href="{{.URL}}" style="display: inline-block; padding: 12px 20px; background: #0f172a; color: #ffffff; text-decoration: none; border-radius: 8px; font-weight: bold;">Reset your password</a></p>
    <p style="font-size: 12px; color: #6b7280;">If you did not request this, you can ignore this email.</p>
  </div>
</body>
</html>`))

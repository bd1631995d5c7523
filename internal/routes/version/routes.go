package version

import (
	"os/exec"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type VersionResponse struct {
	Commit string `json:"commit"`
}

var Version = VersionResponse{Commit: "unknown"}

func init() {
	output, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return
	}

	if commit := strings.TrimSpace(string(output)); commit != "" {
		Version.Commit = commit
	}
}

func SetupRoutes(app *fiber.App) {
	app.Get("/version", versionHandler)
}

func versionHandler(c *fiber.Ctx) error {
	return c.JSON(Version)
}

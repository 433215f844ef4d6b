package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/screenmark/screenmark"
	"github.com/screenmark/screenmark/internal/api"
	"github.com/urfave/cli/v2"
)

const defaultAddr = "127.0.0.1:5000"

func main() {
	app := &cli.App{
		Name:  "screenmark",
		Usage: "screen watermark embedding and detection utility",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "increase verbosity",
			},
		},
		Commands: []*cli.Command{
			embedCommand(),
			detectCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", log.LstdFlags)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func embedCommand() *cli.Command {
	return &cli.Command{
		Name:      "embed",
		Usage:     "Embed a device/session watermark into an image",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "device",
				Usage:    "device identifier (up to 16 UTF-8 bytes)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "session",
				Usage:    "session identifier (up to 16 UTF-8 bytes)",
				Required: true,
			},
			&cli.Float64Flag{
				Name:  "strength",
				Value: screenmark.DefaultStrength,
				Usage: "per-pixel intensity delta",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "output PNG path",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				cli.ShowCommandHelpAndExit(c, "embed", 1)
			}
			logger := newLogger(c)

			src, err := decodeImage(c.Args().First())
			if err != nil {
				return cli.Exit(err, 1)
			}
			marked := screenmark.Embed(c.Context, src,
				c.String("device"), c.String("session"),
				screenmark.WithStrength(c.Float64("strength")))
			logger.Printf("embedded %q/%q into %s", c.String("device"), c.String("session"), c.Args().First())

			if err := writePNG(c.String("output"), marked); err != nil {
				return cli.Exit(err, 1)
			}
			return nil
		},
	}
}

func detectCommand() *cli.Command {
	return &cli.Command{
		Name:      "detect",
		Usage:     "Detect a watermark in an image and print the result",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "post",
				Usage: "base URL of a running demo service to record the result at",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				cli.ShowCommandHelpAndExit(c, "detect", 1)
			}
			src, err := decodeImage(c.Args().First())
			if err != nil {
				return cli.Exit(err, 1)
			}
			result := screenmark.Detect(c.Context, src)

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return cli.Exit(err, 1)
			}
			fmt.Fprintln(c.App.Writer, string(out))

			if url := c.String("post"); url != "" {
				if err := postDetection(url, result); err != nil {
					return cli.Exit(err, 1)
				}
			}
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the demo enrollment/detection recording service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				EnvVars: []string{"SCREENMARK_ADDR"},
				Value:   defaultAddr,
				Usage:   "listen address",
			},
		},
		Action: func(c *cli.Context) error {
			addr := c.String("addr")
			log.Printf("demo service listening on %s", addr)
			if err := api.NewServer().ListenAndServe(addr, log.Default()); err != nil {
				return cli.Exit(err, 1)
			}
			return nil
		},
	}
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func postDetection(baseURL string, result screenmark.Result) error {
	body, err := json.Marshal(map[string]any{
		"device_id":  result.DeviceID,
		"session_id": result.SessionID,
		"payload":    result.Payload,
		"confidence": result.Confidence,
	})
	if err != nil {
		return err
	}
	resp, err := http.Post(baseURL+"/v1/detect", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("detect endpoint returned %s", resp.Status)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lithiumheat/studio"
	"github.com/lithiumheat/studio/export"
	"github.com/lithiumheat/studio/imgutil"
	"github.com/lithiumheat/studio/session"
)

type outputOptions struct {
	zip bool
	pdf bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.zip, "zip", false, "also write a ZIP archive of the images")
	cmd.Flags().BoolVar(&o.pdf, "pdf", false, "also write a PDF catalogue of the images")
}

func newSuiteCommand(a *app) *cobra.Command {
	var (
		prompt, imagePath, ratio, resolution string
		count                                int
		out                                  outputOptions
	)

	cmd := &cobra.Command{
		Use:   "suite",
		Short: "Generate a suite of marketing images",
		Long: `Generate one or more e-commerce images from a scene description and/or
a product photo. The images are generated one after another.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ar, err := studio.ParseAspectRatio(ratio)
			if err != nil {
				return err
			}
			res, err := studio.ParseResolution(resolution)
			if err != nil {
				return err
			}
			img, err := loadImage(imagePath)
			if err != nil {
				return err
			}

			task, err := a.svc.GenerateSuite(cmd.Context(), session.SuiteInput{
				Prompt:      prompt,
				Image:       img,
				AspectRatio: ar,
				Resolution:  res,
				Count:       count,
			})
			if err != nil {
				return fmt.Errorf("suite generation failed: %w", err)
			}
			return a.deliver(cmd.Context(), task, out)
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "scene or product description")
	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "product photo to use as reference")
	cmd.Flags().StringVarP(&ratio, "ratio", "r", string(studio.AspectRatio1x1), "aspect ratio (1:1, 2:3, 3:2, 3:4, 4:3, 9:16, 16:9)")
	cmd.Flags().StringVar(&resolution, "resolution", string(studio.Resolution1K), "output resolution (1K, 2K, 4K)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of images to generate")
	out.register(cmd)
	return cmd
}

func newRestoreCommand(a *app) *cobra.Command {
	var (
		prompt, imagePath, resolution string
		out                           outputOptions
	)

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore and upscale a product photo",
		Long: `Restore a photo with high fidelity: clarity, lighting, noise and sharpness
are improved while the composition and product details are kept. The aspect
ratio is detected from the photo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := studio.ParseResolution(resolution)
			if err != nil {
				return err
			}
			img, err := loadImage(imagePath)
			if err != nil {
				return err
			}

			task, err := a.svc.Restore(cmd.Context(), session.RestoreInput{
				Image:      img,
				Prompt:     prompt,
				Resolution: res,
			})
			if err != nil {
				return fmt.Errorf("restoration failed: %w", err)
			}
			return a.deliver(cmd.Context(), task, out)
		},
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "photo to restore")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "additional adjustments")
	cmd.Flags().StringVar(&resolution, "resolution", string(studio.Resolution4K), "output resolution (1K, 2K, 4K)")
	_ = cmd.MarkFlagRequired("image")
	out.register(cmd)
	return cmd
}

func newSuggestCommand(a *app) *cobra.Command {
	var prompt, imagePath string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Draft a detailed generation prompt for a listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadImage(imagePath)
			if err != nil {
				return err
			}
			suggestion, err := a.svc.Suggest(cmd.Context(), prompt, img)
			if err != nil {
				return fmt.Errorf("prompt suggestion failed: %w", err)
			}
			fmt.Fprintln(a.out, suggestion)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "rough request")
	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "product photo")
	return cmd
}

func newModelsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models and the image settings they accept",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range a.gen.Models() {
				fmt.Fprintf(a.out, "%s\t%s\n", m.Name, m.APIModelName)
				for _, r := range m.ImageConstraints.SupportedAspectRatios {
					fmt.Fprintf(a.out, "  ratio %s\n", r)
				}
				for _, r := range m.ImageConstraints.SupportedResolutions {
					fmt.Fprintf(a.out, "  resolution %s\n", r)
				}
			}
			return nil
		},
	}
}

// deliver saves the images of a task and writes the requested exports.
func (a *app) deliver(ctx context.Context, task studio.TaskGroup, out outputOptions) error {
	results, err := studio.SaveImages(ctx, a.storage, task.Images, task.ID)
	if err != nil {
		return fmt.Errorf("save images: %w", err)
	}
	for _, r := range results {
		fmt.Fprintln(a.out, r.URL)
	}

	taskDir := filepath.Join(a.cfg.OutputDir, task.ID)
	if out.zip {
		path, err := writeExport(taskDir, export.ArchiveFileName, func(f *os.File) error {
			return export.WriteZIP(f, task.Images)
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, path)
	}
	if out.pdf {
		path, err := writeExport(taskDir, export.CatalogFileName, func(f *os.File) error {
			return export.WritePDF(f, task.Images)
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, path)
	}
	return nil
}

func writeExport(dir, name string, write func(*os.File) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path, nil
}

// loadImage reads an image file into a data URL. An empty path yields "".
func loadImage(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	mimeType := http.DetectContentType(data)
	if !studio.ValidMIMETypes[mimeType] {
		mimeType = studio.GetMIMEType(path)
	}
	if err := studio.ValidateUpload(data, mimeType); err != nil {
		return "", err
	}
	return imgutil.EncodeDataURL(mimeType, data), nil
}

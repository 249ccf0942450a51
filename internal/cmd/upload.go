package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"folioadmin/internal/client"
)

var uploadFlags struct {
	title      string
	collection string
}

var uploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload one photo through the admin upload form",
	Long: `Upload sends a JPEG, PNG or WebP file to the admin upload form.
The title defaults to the file name without its extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadFlags.title, "title", "", "photo title (default is the file name)")
	uploadCmd.Flags().StringVar(&uploadFlags.collection, "collection", "", "collection the photo belongs to")
	_ = uploadCmd.MarkFlagRequired("collection")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return uploadFile(cmd, a, args[0], uploadFlags.title, uploadFlags.collection)
}

func uploadFile(cmd *cobra.Command, a *app, path, title, collection string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	err = a.client.UploadPhoto(a.ctx, client.PhotoUpload{
		Title:      title,
		Collection: collection,
		FileName:   path,
		Data:       f,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s as %q.\n", filepath.Base(path), title)
	return nil
}

package cmd

import (
	"bytes"

	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the registered scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	formatSceneTable(&buf, scene.ListScenes())
	logger.Noticef("available scenes\n%s", buf.String())
	return nil
}

func formatSceneTable(buf *bytes.Buffer, scenes []scene.SceneInfo) {
	table := tablewriter.NewWriter(buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"ID", "Name", "Group", "Description"})
	for _, info := range scenes {
		table.Append([]string{info.ID, info.DisplayName, info.Group, info.Description})
	}
	table.Render()
}

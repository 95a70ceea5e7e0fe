package snipeit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/toolsets"
	"github.com/snipeit-community/snipeit-mcp-server/pkg/translations"
	"github.com/yosida95/uritemplate/v3"
)

var (
	assetResourceURITemplate      = uritemplate.MustNew("snipeit://hardware/{id}")
	assetByTagResourceURITemplate = uritemplate.MustNew("snipeit://hardware/bytag/{asset_tag}")
)

// AssetResource defines the resource template for reading one asset by ID.
func AssetResource(t translations.TranslationHelperFunc) toolsets.ServerResourceTemplate {
	return toolsets.ServerResourceTemplate{
		Toolset: ToolsetMetadataAssets,
		Template: mcp.ResourceTemplate{
			Name:        "asset",
			URITemplate: assetResourceURITemplate.Raw(),
			Description: t("RESOURCE_ASSET_DESCRIPTION", "Asset by ID"),
			MIMEType:    "application/json",
		},
		Handler: assetResourceHandler,
	}
}

// AssetByTagResource defines the resource template for reading one asset by
// its asset tag.
func AssetByTagResource(t translations.TranslationHelperFunc) toolsets.ServerResourceTemplate {
	return toolsets.ServerResourceTemplate{
		Toolset: ToolsetMetadataAssets,
		Template: mcp.ResourceTemplate{
			Name:        "asset_by_tag",
			URITemplate: assetByTagResourceURITemplate.Raw(),
			Description: t("RESOURCE_ASSET_BY_TAG_DESCRIPTION", "Asset by tag"),
			MIMEType:    "application/json",
		},
		Handler: assetByTagResourceHandler,
	}
}

func assetResourceHandler(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uriValues := assetResourceURITemplate.Match(request.Params.URI)
	if uriValues == nil {
		return nil, fmt.Errorf("failed to match URI: %s", request.Params.URI)
	}
	id, err := strconv.ParseInt(uriValues.Get("id").String(), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid asset ID in URI: %s", request.Params.URI)
	}

	deps := MustDepsFromContext(ctx)
	client, err := deps.GetClient(ctx)
	if err != nil {
		return nil, err
	}
	asset, err := client.Get(ctx, "hardware", id)
	if err != nil {
		return nil, err
	}
	return assetResourceResult(request.Params.URI, asset)
}

func assetByTagResourceHandler(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uriValues := assetByTagResourceURITemplate.Match(request.Params.URI)
	if uriValues == nil {
		return nil, fmt.Errorf("failed to match URI: %s", request.Params.URI)
	}
	tag := uriValues.Get("asset_tag").String()
	if tag == "" {
		return nil, fmt.Errorf("asset_tag is required")
	}

	deps := MustDepsFromContext(ctx)
	client, err := deps.GetClient(ctx)
	if err != nil {
		return nil, err
	}
	asset, err := client.Do(ctx, http.MethodGet, "hardware/bytag/"+tag, nil, nil)
	if err != nil {
		return nil, err
	}
	return assetResourceResult(request.Params.URI, asset)
}

func assetResourceResult(uri string, asset map[string]any) (*mcp.ReadResourceResult, error) {
	data, err := json.Marshal(asset)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal asset: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

// AllResources returns every resource template provided by the server.
func AllResources(t translations.TranslationHelperFunc) []toolsets.ServerResourceTemplate {
	return []toolsets.ServerResourceTemplate{
		AssetResource(t),
		AssetByTagResource(t),
	}
}

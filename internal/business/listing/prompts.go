package listing

// 上架文案生成提示词
// 要求对端输出严格 JSON，字段集与 Listing 结构对应
const listingPromptTemplate = `You are a professional Shopify Copywriter.
Create a listing for the following product.
Output strictly JSON with keys: title, description_html, bullets (list), tags (list), seo_title, seo_description.

Product Data:
Name: %s
Category: %s
Description: %s
Features: Weight %.1fkg
`

// 合规审核提示词
const auditPromptTemplate = `Review this Shopify listing for compliance.
Check for: Grammar errors, Over-promising (claims not in data), and SEO length.
Output JSON: { "status": "PASS" or "FAIL", "issues": ["issue1", "issue2"] }

Listing: %s
`

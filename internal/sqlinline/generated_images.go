package sqlinline

const QInsertGeneratedImage = `--sql 7d0f2b4d-6e8a-4c1e-a3b5-9d1f3b5d7f36
insert into generated_images (id, prompt, image_url, model_used, size, created_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::bigint, $6::timestamptz);
`

const QListGeneratedImages = `--sql 2e4a6c8e-0b1d-4f3a-b5c7-4e6a8c0e2a49
select id::text, prompt, image_url, model_used, size, created_at
from generated_images
order by created_at desc
limit $1::int;
`
